package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionStatuses(t *testing.T) {
	now := testBase

	t.Run("elapsed minutes are floored", func(t *testing.T) {
		p := PartitionStatuses([]RegionStatus{
			{Region: "X", Kind: KindFull, StartedAt: now.Add(-125 * time.Second)},
		}, now, PolicyNoDuration)

		require.Len(t, p.Timed, 1)
		assert.Equal(t, TimedEntry{Region: "X", Kind: KindFull, Minutes: 2, HasDuration: true}, p.Timed[0])
		assert.Empty(t, p.Excluded)
		assert.Empty(t, p.Anomalies)
	})

	t.Run("under a minute is zero", func(t *testing.T) {
		p := PartitionStatuses([]RegionStatus{
			{Region: "X", Kind: KindPartial, StartedAt: now.Add(-59 * time.Second)},
		}, now, PolicyNoDuration)

		require.Len(t, p.Timed, 1)
		assert.Equal(t, 0, p.Timed[0].Minutes)
	})

	t.Run("future start is clamped and reported", func(t *testing.T) {
		p := PartitionStatuses([]RegionStatus{
			{Region: "X", Kind: KindFull, StartedAt: now.Add(3 * time.Minute)},
		}, now, PolicyNoDuration)

		require.Len(t, p.Timed, 1)
		assert.Equal(t, 0, p.Timed[0].Minutes)
		assert.True(t, p.Timed[0].HasDuration)
		require.Len(t, p.Anomalies, 1)
		assert.Equal(t, AnomalyFutureStart, p.Anomalies[0].Kind)
		assert.Equal(t, "X", p.Anomalies[0].Region)
	})

	t.Run("excluded regions never get a duration", func(t *testing.T) {
		p := PartitionStatuses([]RegionStatus{
			{Region: testLuhanskOblast, Kind: KindFull, StartedAt: now.Add(-time.Hour)},
			{Region: testCrimea, Kind: KindPartial},
		}, now, PolicyNoDuration)

		assert.Empty(t, p.Timed)
		assert.Equal(t, []ExcludedEntry{
			{Region: testLuhanskOblast, Kind: KindFull},
			{Region: testCrimea, Kind: KindPartial},
		}, p.Excluded)
	})
}

func TestPartitionStatuses_MissingStartPolicy(t *testing.T) {
	statuses := []RegionStatus{
		{Region: testKyivOblast, Kind: KindFull},
		{Region: testKharkivOblast, Kind: KindPartial, StartedAt: testBase.Add(-10 * time.Minute)},
	}

	tests := []struct {
		policy       MissingStartPolicy
		wantTimed    []TimedEntry
		wantExcluded []ExcludedEntry
		wantHidden   int
	}{
		{
			policy: PolicyNoDuration,
			wantTimed: []TimedEntry{
				{Region: testKyivOblast, Kind: KindFull},
				{Region: testKharkivOblast, Kind: KindPartial, Minutes: 10, HasDuration: true},
			},
		},
		{
			policy: PolicyHide,
			wantTimed: []TimedEntry{
				{Region: testKharkivOblast, Kind: KindPartial, Minutes: 10, HasDuration: true},
			},
			wantHidden: 1,
		},
		{
			policy: PolicyExclude,
			wantTimed: []TimedEntry{
				{Region: testKharkivOblast, Kind: KindPartial, Minutes: 10, HasDuration: true},
			},
			wantExcluded: []ExcludedEntry{{Region: testKyivOblast, Kind: KindFull}},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			p := PartitionStatuses(statuses, testBase, tt.policy)
			assert.Equal(t, tt.wantTimed, p.Timed)
			assert.Equal(t, tt.wantExcluded, p.Excluded)
			assert.Equal(t, tt.wantHidden, p.Hidden)
		})
	}
}

func TestParseMissingStartPolicy(t *testing.T) {
	for _, s := range []string{"no_duration", "hide", "exclude"} {
		p, err := ParseMissingStartPolicy(s)
		require.NoError(t, err)
		assert.Equal(t, MissingStartPolicy(s), p)
	}

	_, err := ParseMissingStartPolicy("guess")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "guess")
}

func TestPartitionStatuses_MinutesNeverNegative(t *testing.T) {
	var statuses []RegionStatus
	for i := -5; i <= 5; i++ {
		statuses = append(statuses, RegionStatus{
			Region:    string(rune('A' + i + 5)),
			Kind:      KindFull,
			StartedAt: testBase.Add(time.Duration(i) * 37 * time.Second),
		})
	}

	p := PartitionStatuses(statuses, testBase, PolicyNoDuration)
	require.Len(t, p.Timed, len(statuses))
	for _, e := range p.Timed {
		assert.GreaterOrEqual(t, e.Minutes, 0, e.Region)
	}
}
