package analysis

import (
	"math"
	"sort"

	"github.com/osintment/osintment/pkg/finding"
)

// DefaultTopN is the number of categories reported in the top-categories
// ranking when the caller does not override it.
const DefaultTopN = 5

// topModules caps the module efficiency ranking.
const topModules = 10

// CategoryCount is one entry in the top-categories ranking.
type CategoryCount struct {
	Category finding.Category `json:"category"`
	Count    int              `json:"count"`
}

// ModuleCount is one entry in the module efficiency ranking.
type ModuleCount struct {
	Module string `json:"module"`
	Count  int    `json:"count"`
}

// SummaryStats holds the aggregated view of one classified batch.
// It is a value object: Aggregate returns a fresh copy with no live
// references into its input.
type SummaryStats struct {
	TotalFindings    int                          `json:"total_findings"`
	UniqueEventTypes int                          `json:"unique_event_types"`
	CountByCategory  map[finding.Category]int     `json:"count_by_category"`
	UniqueByCategory map[finding.Category]int     `json:"unique_by_category"`
	Distribution     map[finding.Category]float64 `json:"distribution"`
	BySeverity       map[finding.Severity]int     `json:"by_severity"`
	CriticalFindings int                          `json:"critical_findings"`
	TopCategories    []CategoryCount              `json:"top_categories"`
	ModuleStats      []ModuleCount                `json:"module_stats"`
	AvgConfidence    float64                      `json:"avg_confidence"`
}

// Aggregate folds a classified batch into summary statistics.
//
// Percentages in Distribution are expressed in tenths of a percent and
// allocated by largest remainder, so a non-empty distribution sums to
// exactly 100.0. CriticalFindings counts critical and high tiers.
// TopCategories ranks categories by count, ties broken by enumeration
// order; topN <= 0 selects DefaultTopN. Records without a confidence
// value are excluded from AvgConfidence.
//
// Only a nil input sequence is an error; an empty batch aggregates to
// zeroed statistics.
func Aggregate(classified []Classified, topN int) (SummaryStats, error) {
	stats := SummaryStats{
		CountByCategory:  make(map[finding.Category]int),
		UniqueByCategory: make(map[finding.Category]int),
		Distribution:     make(map[finding.Category]float64),
		BySeverity:       make(map[finding.Severity]int),
		TopCategories:    []CategoryCount{},
		ModuleStats:      []ModuleCount{},
	}
	if classified == nil {
		return stats, finding.ErrNilInput
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	uniqueValues := make(map[finding.Category]map[string]struct{})
	eventTypes := make(map[string]struct{})
	moduleCounts := make(map[string]int)
	confSum, confN := 0, 0

	for _, c := range classified {
		stats.TotalFindings++
		stats.CountByCategory[c.Category]++
		stats.BySeverity[c.Severity]++
		eventTypes[c.Record.EventType] = struct{}{}

		if c.Severity == finding.Critical || c.Severity == finding.High {
			stats.CriticalFindings++
		}

		vals := uniqueValues[c.Category]
		if vals == nil {
			vals = make(map[string]struct{})
			uniqueValues[c.Category] = vals
		}
		vals[c.Record.Value] = struct{}{}

		if mod := c.Record.SourceModule; mod != "" {
			moduleCounts[mod]++
		}
		if c.Record.Confidence != nil {
			confSum += *c.Record.Confidence
			confN++
		}
	}

	stats.UniqueEventTypes = len(eventTypes)
	for cat, vals := range uniqueValues {
		stats.UniqueByCategory[cat] = len(vals)
	}
	if confN > 0 {
		stats.AvgConfidence = math.Round(float64(confSum)/float64(confN)*10) / 10
	}

	stats.Distribution = distribution(stats.CountByCategory, stats.TotalFindings)
	stats.TopCategories = topCategories(stats.CountByCategory, topN)
	stats.ModuleStats = topModuleCounts(moduleCounts)

	return stats, nil
}

// distribution allocates percentage shares in tenths of a percent using
// the largest remainder method, so the result sums to exactly 100.0.
// Remainder ties go to the category earlier in the enumeration order.
func distribution(counts map[finding.Category]int, total int) map[finding.Category]float64 {
	dist := make(map[finding.Category]float64)
	if total == 0 {
		return dist
	}

	type share struct {
		cat    finding.Category
		tenths int
		rem    int
	}
	shares := make([]share, 0, len(counts))
	allocated := 0
	for _, cat := range finding.Categories() {
		count, ok := counts[cat]
		if !ok {
			continue
		}
		t := count * 1000 / total
		shares = append(shares, share{cat: cat, tenths: t, rem: count * 1000 % total})
		allocated += t
	}

	// Hand out the leftover tenths to the largest remainders.
	sort.SliceStable(shares, func(i, j int) bool { return shares[i].rem > shares[j].rem })
	for i := 0; i < 1000-allocated && i < len(shares); i++ {
		shares[i].tenths++
	}

	for _, s := range shares {
		dist[s.cat] = float64(s.tenths) / 10
	}
	return dist
}

// topCategories ranks categories by count descending, ties broken by
// the category's position in the fixed enumeration order.
func topCategories(counts map[finding.Category]int, n int) []CategoryCount {
	ranked := make([]CategoryCount, 0, len(counts))
	for _, cat := range finding.Categories() {
		if count, ok := counts[cat]; ok {
			ranked = append(ranked, CategoryCount{Category: cat, Count: count})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// topModuleCounts ranks producing modules by finding count descending,
// ties broken lexicographically, capped at topModules entries.
func topModuleCounts(counts map[string]int) []ModuleCount {
	ranked := make([]ModuleCount, 0, len(counts))
	for mod, count := range counts {
		ranked = append(ranked, ModuleCount{Module: mod, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Module < ranked[j].Module
	})
	if len(ranked) > topModules {
		ranked = ranked[:topModules]
	}
	return ranked
}
