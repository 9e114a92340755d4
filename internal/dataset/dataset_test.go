package dataset

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkrv/govimpact/internal/model"
	"github.com/mkrv/govimpact/internal/pricing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadPostsDropsMalformedTimestamps(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "posts.csv",
		"protocol,post_id,timestamp,title,description,discussion_link\n"+
			"aave,a-1,2024-06-01T00:00:00Z,Fee switch,Turn it on,\n"+
			"aave,a-2,not-a-date,Broken row,,\n"+
			"uniswap,u-1,2024-06-02 12:30:00+00:00,V4 hooks,Details,https://gov.uniswap.org/t/1\n")

	posts, report, err := ReadPosts(path)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Rows)
	assert.Equal(t, 1, report.Malformed)
	require.Len(t, posts, 2)
	assert.Equal(t, "a-1", posts[0].PostID)
	assert.Equal(t, time.Date(2024, 6, 2, 12, 30, 0, 0, time.UTC), posts[1].Timestamp)
	assert.Equal(t, "https://gov.uniswap.org/t/1", posts[1].DiscussionLink)
}

func TestFilterByDateRange(t *testing.T) {
	mk := func(ts time.Time) model.Post { return model.Post{Timestamp: ts} }
	from := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 25, 0, 0, 0, 0, time.UTC)

	posts := []model.Post{
		mk(from.Add(-time.Second)),
		mk(from),
		mk(from.AddDate(0, 6, 0)),
		mk(to),
		mk(to.Add(time.Second)),
	}

	got := FilterByDateRange(posts, from, to)
	assert.Len(t, got, 3)
}

func TestReadSeriesSortsAscending(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, PriceFileName("aave"),
		"timestamp,price\n"+
			"2024-06-03T00:00:00Z,92.1\n"+
			"2024-06-01T00:00:00Z,90\n"+
			"2024-06-02T00:00:00Z,91.5\n")

	series, err := ReadSeries(path)
	require.NoError(t, err)
	require.Len(t, series, 3)
	assert.Equal(t, 90.0, series[0].Price)
	assert.Equal(t, 92.1, series[2].Price)
}

func TestLoadSeriesDirMissingFileIsAbsentNotError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, PriceFileName("aave"),
		"timestamp,price\n2024-06-01T00:00:00Z,90\n")

	lookup, err := LoadSeriesDir(dir, []string{"aave", "nolisting"})
	require.NoError(t, err)

	assert.Contains(t, lookup, "aave")
	assert.NotContains(t, lookup, "nolisting")
}

func TestImpactRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "impact.csv")

	inc := 10.0
	withHorizon := model.ImpactRecord{
		Post: model.Post{
			Protocol:  "aave",
			PostID:    "a-1",
			Timestamp: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			Title:     "Fee switch",
		},
		AnchorPrice:     100,
		PercentIncrease: &inc,
		PercentGain:     30,
		PercentLoss:     -5,
		WindowMaxTime:   time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		WindowMinTime:   time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
		DaysToMax:       2,
		DaysToMin:       4,
	}
	withoutHorizon := withHorizon
	withoutHorizon.PostID = "a-2"
	withoutHorizon.PercentIncrease = nil

	require.NoError(t, WriteImpactRecords(path, []model.ImpactRecord{withHorizon, withoutHorizon}))

	got, err := ReadImpactRecords(path)
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.NotNil(t, got[0].PercentIncrease)
	assert.Equal(t, 10.0, *got[0].PercentIncrease)
	assert.Nil(t, got[1].PercentIncrease, "missing horizon must survive the round trip as nil")
	assert.Equal(t, -5.0, got[0].PercentLoss)
	assert.True(t, got[0].WindowMaxTime.Equal(withHorizon.WindowMaxTime))
}

func TestTierWriteReadInfinity(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, TierFileName("controlled_risk", 10))

	rec := model.ClassifiedRecord{
		ImpactRecord: model.ImpactRecord{
			Post: model.Post{
				Protocol:  "aave",
				PostID:    "a-1",
				Timestamp: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			},
			PercentGain:   20,
			PercentLoss:   1,
			WindowMaxTime: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
			WindowMinTime: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
		},
		ControlledRisk: true,
		GainRiskRatio:  math.Inf(1),
		ActualGainPct:  20,
	}

	require.NoError(t, WriteControlledRiskTier(path, []model.ClassifiedRecord{rec}))

	got, err := ReadTier(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, math.IsInf(got[0].GainRiskRatio, 1), "inf ratio must survive the round trip")
}

func TestWriteSeriesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, PriceFileName("aave"))

	series := pricing.Series{
		{Timestamp: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Price: 90.25},
		{Timestamp: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), Price: 91},
	}
	require.NoError(t, WriteSeries(path, series))

	got, err := ReadSeries(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 90.25, got[0].Price)
}
