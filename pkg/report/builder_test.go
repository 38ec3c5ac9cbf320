package report

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osintment/osintment/pkg/analysis"
	"github.com/osintment/osintment/pkg/finding"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func buildFrom(t *testing.T, records []finding.Record, info BuildInfo) *Document {
	t.Helper()
	classified, _, err := analysis.Classify(records, quiet)
	require.NoError(t, err)
	stats, err := analysis.Aggregate(classified, 0)
	require.NoError(t, err)
	return Build(classified, stats, info)
}

func TestBuildOrdersEntriesBySeverityThenValue(t *testing.T) {
	records := []finding.Record{
		{EventType: "subdomain", Value: "z.example.com"},
		{EventType: "subdomain", Value: "a.example.com"},
	}

	doc := buildFrom(t, records, BuildInfo{Target: "example.com"})
	sec := doc.Section(finding.CategorySubdomain)
	require.NotNil(t, sec)
	require.Len(t, sec.Entries, 2)

	assert.Equal(t, "a.example.com", sec.Entries[0].Value)
	assert.Equal(t, "z.example.com", sec.Entries[1].Value)
}

func TestBuildSeverityOrderingBeatsValueOrdering(t *testing.T) {
	records := []finding.Record{
		{EventType: "ssl_cert_expired", Value: "aaa.example.com"}, // medium
		{EventType: "vulnerability", Value: "zzz-CVE-2024-9999"},  // high
	}

	doc := buildFrom(t, records, BuildInfo{Target: "example.com"})
	sec := doc.Section(finding.CategorySecurity)
	require.NotNil(t, sec)
	require.Len(t, sec.Entries, 2)

	assert.Equal(t, finding.High, sec.Entries[0].Severity)
	assert.Equal(t, "zzz-CVE-2024-9999", sec.Entries[0].Value)
}

func TestBuildSectionsFollowEnumerationOrder(t *testing.T) {
	records := []finding.Record{
		{EventType: "social_profile", Value: "twitter.com/example"},
		{EventType: "domain_name", Value: "example.com"},
		{EventType: "email_address", Value: "sec@example.com"},
	}

	doc := buildFrom(t, records, BuildInfo{Target: "example.com"})
	require.Len(t, doc.Sections, 3)

	assert.Equal(t, finding.CategoryDomain, doc.Sections[0].Category)
	assert.Equal(t, finding.CategoryContact, doc.Sections[1].Category)
	assert.Equal(t, finding.CategorySocial, doc.Sections[2].Category)
}

func TestBuildEmptyInputStillRenders(t *testing.T) {
	info := BuildInfo{
		Target: "example.com",
		ScanID: "scan-001",
		Meta:   Meta{Company: "ACME Intelligence", Author: "OSINT Team"},
	}

	doc := buildFrom(t, []finding.Record{}, info)

	assert.Empty(t, doc.Sections)
	assert.Equal(t, 0, doc.Stats.TotalFindings)
	assert.Equal(t, 0, doc.FindingCount())
	assert.Equal(t, "ACME Intelligence", doc.Meta.Company)
	assert.False(t, doc.GeneratedAt.IsZero())
}

func TestBuildUsesStatsVerbatim(t *testing.T) {
	classified, _, err := analysis.Classify([]finding.Record{
		{EventType: "subdomain", Value: "a.example.com"},
	}, quiet)
	require.NoError(t, err)
	stats, err := analysis.Aggregate(classified, 0)
	require.NoError(t, err)

	doc := Build(classified, stats, BuildInfo{Target: "example.com"})
	assert.Equal(t, stats, doc.Stats, "summary block must be the aggregator's output, untouched")
}

func TestBuildFixedTimestamp(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	doc := Build(nil, analysis.SummaryStats{}, BuildInfo{Target: "example.com", GeneratedAt: at})
	assert.Equal(t, at, doc.GeneratedAt)
}
