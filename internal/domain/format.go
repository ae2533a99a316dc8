package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"
)

const (
	panelTitle    = "Повітряні тривоги"
	noAlertsText  = "Немає активних тривог"
	apiErrorText  = "⚠ Помилка API"
	updatedLayout = "15:04:05"
	updatedPrefix = "Оновлено "
	lineSeparator = " — "
	minutesSuffix = " хв"
	hiddenPrefix  = "Регіонів без часу початку: "
)

// NoAlertsLine is the single line shown when no region has an active alert.
var NoAlertsLine = DisplayLine{Text: noAlertsText, Color: ColorClear}

// Format builds the panel for one refresh cycle. Timed entries are sorted by
// ascending duration (stable, entries without a duration last), then excluded
// entries follow in their original order. Hidden regions are summarized in a
// final line so the panel never reads as clear while an alert is active.
func Format(p Partition, updatedAt time.Time, loc *time.Location) Panel {
	panel := Panel{
		Title:     panelTitle,
		Footer:    footer(updatedAt, loc),
		UpdatedAt: updatedAt,
	}

	if p.Empty() {
		panel.Border = ColorClear
		panel.Lines = []DisplayLine{NoAlertsLine}
		return panel
	}

	timed := slices.Clone(p.Timed)
	slices.SortStableFunc(timed, compareTimed)

	lines := make([]DisplayLine, 0, len(timed)+len(p.Excluded)+1)
	for _, e := range timed {
		text := e.Region + lineSeparator + e.Kind.Label()
		if e.HasDuration {
			text += fmt.Sprintf(" %d%s", e.Minutes, minutesSuffix)
		}
		lines = append(lines, DisplayLine{Text: text, Color: ColorFor(e.Kind)})
	}
	for _, e := range p.Excluded {
		lines = append(lines, DisplayLine{
			Text:  e.Region + lineSeparator + e.Kind.Label(),
			Color: ColorFor(e.Kind),
		})
	}

	if p.Hidden > 0 {
		lines = append(lines, DisplayLine{Text: fmt.Sprintf("%s%d", hiddenPrefix, p.Hidden), Color: ColorFull})
	}

	panel.Border = ColorError
	panel.Lines = lines
	return panel
}

// ErrorPanel builds the panel shown when a refresh fails.
func ErrorPanel(err error, updatedAt time.Time, loc *time.Location) Panel {
	return Panel{
		Title:  panelTitle,
		Border: ColorError,
		Lines: []DisplayLine{
			{Text: apiErrorText, Color: ColorError},
			{Text: err.Error(), Color: ColorError},
		},
		Footer:    footer(updatedAt, loc),
		UpdatedAt: updatedAt,
	}
}

// PlainText renders a panel without styling, one line per entry.
func (p Panel) PlainText() string {
	var b strings.Builder
	b.WriteString(p.Title)
	b.WriteByte('\n')
	for _, l := range p.Lines {
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(p.Footer.Text)
	b.WriteByte('\n')
	return b.String()
}

// compareTimed orders by minutes; entries without a duration go last.
func compareTimed(a, b TimedEntry) int {
	if a.HasDuration != b.HasDuration {
		if a.HasDuration {
			return -1
		}
		return 1
	}
	return cmp.Compare(a.Minutes, b.Minutes)
}

func footer(updatedAt time.Time, loc *time.Location) DisplayLine {
	if loc == nil {
		loc = time.Local
	}
	return DisplayLine{Text: updatedPrefix + updatedAt.In(loc).Format(updatedLayout), Color: ColorMuted}
}
