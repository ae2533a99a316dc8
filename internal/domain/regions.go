package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ExcludedRegions have no reliable start-time semantics and are always shown
// without a duration.
var ExcludedRegions = []string{
	"Луганська область",
	"Автономна Республіка Крим",
}

// IoTRegions is the fixed order of oblasts in the IoT status string. The
// payload is expected to contain exactly one status character per entry.
var IoTRegions = []string{
	"Автономна Республіка Крим",
	"Волинська область",
	"Вінницька область",
	"Дніпропетровська область",
	"Донецька область",
	"Житомирська область",
	"Закарпатська область",
	"Запорізька область",
	"Івано-Франківська область",
	"м. Київ",
	"Київська область",
	"Кіровоградська область",
	"Луганська область",
	"Львівська область",
	"Миколаївська область",
	"Одеська область",
	"Полтавська область",
	"Рівненська область",
	"м. Севастополь",
	"Сумська область",
	"Тернопільська область",
	"Харківська область",
	"Херсонська область",
	"Хмельницька область",
	"Черкаська область",
	"Чернівецька область",
	"Чернігівська область",
}

var excludedSet = mustRegionSet(ExcludedRegions)

func init() {
	if err := ValidateRegions(IoTRegions); err != nil {
		panic(fmt.Sprintf("domain: invalid IoT region list: %v", err))
	}
}

// NormalizeRegion trims and NFC-normalizes a region name for use as a key.
func NormalizeRegion(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// IsExcluded reports whether the region belongs to the fixed exclusion set.
func IsExcluded(region string) bool {
	_, ok := excludedSet[NormalizeRegion(region)]
	return ok
}

// ValidateRegions checks that a fixed region list is non-empty, has no blank
// names and no duplicates after normalization.
func ValidateRegions(regions []string) error {
	if len(regions) == 0 {
		return fmt.Errorf("region list is empty")
	}
	seen := make(map[string]int, len(regions))
	for i, r := range regions {
		key := NormalizeRegion(r)
		if key == "" {
			return fmt.Errorf("region %d is blank", i)
		}
		if j, dup := seen[key]; dup {
			return fmt.Errorf("region %q at %d duplicates index %d", key, i, j)
		}
		seen[key] = i
	}
	return nil
}

func mustRegionSet(regions []string) map[string]struct{} {
	if err := ValidateRegions(regions); err != nil {
		panic(fmt.Sprintf("domain: invalid region set: %v", err))
	}
	set := make(map[string]struct{}, len(regions))
	for _, r := range regions {
		set[NormalizeRegion(r)] = struct{}{}
	}
	return set
}
