package analysis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osintment/osintment/pkg/finding"
)

func classifiedBatch(t *testing.T, records []finding.Record) []Classified {
	t.Helper()
	classified, _, err := Classify(records, quiet)
	require.NoError(t, err)
	return classified
}

func TestAggregateCounts(t *testing.T) {
	conf80, conf60 := 80, 60
	records := []finding.Record{
		{EventType: "subdomain", Value: "a.example.com", SourceModule: "sfp_dns", Confidence: &conf80},
		{EventType: "subdomain", Value: "b.example.com", SourceModule: "sfp_dns", Confidence: &conf60},
		{EventType: "subdomain", Value: "a.example.com", SourceModule: "sfp_crt"},
		{EventType: "leaked_credential", Value: "alice:hunter2", SourceModule: "sfp_leaks", RiskFlag: true},
		{EventType: "vulnerability", Value: "CVE-2024-1234", SourceModule: "sfp_vulndb"},
	}

	stats, err := Aggregate(classifiedBatch(t, records), 0)
	require.NoError(t, err)

	assert.Equal(t, 5, stats.TotalFindings)
	assert.Equal(t, 3, stats.UniqueEventTypes)
	assert.Equal(t, 3, stats.CountByCategory[finding.CategorySubdomain])
	assert.Equal(t, 2, stats.UniqueByCategory[finding.CategorySubdomain], "duplicate values collapse")
	assert.Equal(t, 2, stats.CriticalFindings, "critical + high")
	assert.Equal(t, 1, stats.BySeverity[finding.Critical])
	assert.Equal(t, 70.0, stats.AvgConfidence, "records without confidence excluded")

	require.NotEmpty(t, stats.TopCategories)
	assert.Equal(t, finding.CategorySubdomain, stats.TopCategories[0].Category)

	require.NotEmpty(t, stats.ModuleStats)
	assert.Equal(t, ModuleCount{Module: "sfp_dns", Count: 2}, stats.ModuleStats[0])
}

func TestAggregateDistributionSumsTo100(t *testing.T) {
	// Three equal categories force recurring decimals (33.333...%).
	cases := [][]finding.Record{
		{
			{EventType: "subdomain", Value: "a"},
			{EventType: "ip_address", Value: "b"},
			{EventType: "email_address", Value: "c"},
		},
		{
			{EventType: "subdomain", Value: "a"},
			{EventType: "subdomain", Value: "b"},
			{EventType: "ip_address", Value: "c"},
			{EventType: "email_address", Value: "d"},
			{EventType: "vulnerability", Value: "e"},
			{EventType: "social_profile", Value: "f"},
			{EventType: "leaked_data", Value: "g"},
		},
		{
			{EventType: "subdomain", Value: "only"},
		},
	}

	for i, records := range cases {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			stats, err := Aggregate(classifiedBatch(t, records), 0)
			require.NoError(t, err)

			sum := 0.0
			for _, pct := range stats.Distribution {
				sum += pct
			}
			assert.InDelta(t, 100.0, sum, 0.1)
		})
	}
}

func TestAggregateTopNTieBreak(t *testing.T) {
	// One finding in each of four categories: ties must resolve by
	// enumeration order (domain, subdomain, ip, contact, ...).
	records := []finding.Record{
		{EventType: "email_address", Value: "a@example.com"},
		{EventType: "domain_name", Value: "example.com"},
		{EventType: "ip_address", Value: "203.0.113.1"},
		{EventType: "subdomain", Value: "dev.example.com"},
	}

	stats, err := Aggregate(classifiedBatch(t, records), 3)
	require.NoError(t, err)

	require.Len(t, stats.TopCategories, 3)
	assert.Equal(t, finding.CategoryDomain, stats.TopCategories[0].Category)
	assert.Equal(t, finding.CategorySubdomain, stats.TopCategories[1].Category)
	assert.Equal(t, finding.CategoryIP, stats.TopCategories[2].Category)
}

func TestAggregateEmptyInput(t *testing.T) {
	stats, err := Aggregate([]Classified{}, 0)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.TotalFindings)
	assert.Equal(t, 0, stats.CriticalFindings)
	assert.Empty(t, stats.Distribution)
	assert.Empty(t, stats.TopCategories)
	assert.Zero(t, stats.AvgConfidence)
}

func TestAggregateNilInput(t *testing.T) {
	_, err := Aggregate(nil, 0)
	assert.ErrorIs(t, err, finding.ErrNilInput)
}

func TestAggregateEmptyAfterEmptyClassify(t *testing.T) {
	stats, err := Aggregate(classifiedBatch(t, []finding.Record{}), 0)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalFindings)
}
