package dataset

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/mkrv/govimpact/internal/model"
)

var impactColumns = append(append([]string{}, postColumns...),
	"percent_increase",
	"max_percent_gain",
	"min_percent_loss",
	"max_price_date",
	"min_price_date",
	"days_to_max",
	"days_to_min",
)

// WriteImpactRecords writes the impact table: post columns plus the derived
// price metrics. percent_increase is empty when no sample matched near the
// horizon date.
func WriteImpactRecords(path string, records []model.ImpactRecord) error {
	rows := [][]string{impactColumns}
	for _, r := range records {
		rows = append(rows, impactRow(r))
	}
	return writeCSV(path, rows)
}

func impactRow(r model.ImpactRecord) []string {
	return append(postRow(r.Post),
		formatOptFloat(r.PercentIncrease),
		formatFloat(r.PercentGain),
		formatFloat(r.PercentLoss),
		formatTimestamp(r.WindowMaxTime),
		formatTimestamp(r.WindowMinTime),
		formatFloat(r.DaysToMax),
		formatFloat(r.DaysToMin),
	)
}

// ReadImpactRecords loads an impact table back. Anchor and raw window prices
// are not part of the table; classification only consumes the percent metrics
// and extrema dates.
func ReadImpactRecords(path string) ([]model.ImpactRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open impact file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read impact header: %w", err)
	}
	col, err := columnIndex(header, []string{"protocol", "timestamp", "max_percent_gain", "min_percent_loss"})
	if err != nil {
		return nil, fmt.Errorf("impact file: %w", err)
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read impact rows: %w", err)
	}

	var records []model.ImpactRecord
	for i, row := range rows {
		rec, err := parseImpactRow(row, col)
		if err != nil {
			return nil, fmt.Errorf("impact row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseImpactRow(row []string, col map[string]int) (model.ImpactRecord, error) {
	var rec model.ImpactRecord

	ts, err := parseTimestamp(field(row, col, "timestamp"))
	if err != nil {
		return rec, err
	}
	rec.Post = model.Post{
		Protocol:       field(row, col, "protocol"),
		PostID:         field(row, col, "post_id"),
		Timestamp:      ts,
		Title:          field(row, col, "title"),
		Description:    field(row, col, "description"),
		DiscussionLink: field(row, col, "discussion_link"),
	}

	if rec.PercentIncrease, err = parseOptFloat(field(row, col, "percent_increase")); err != nil {
		return rec, fmt.Errorf("percent_increase: %w", err)
	}
	if rec.PercentGain, err = parseFloat(field(row, col, "max_percent_gain")); err != nil {
		return rec, fmt.Errorf("max_percent_gain: %w", err)
	}
	if rec.PercentLoss, err = parseFloat(field(row, col, "min_percent_loss")); err != nil {
		return rec, fmt.Errorf("min_percent_loss: %w", err)
	}
	if rec.WindowMaxTime, err = parseTimestamp(field(row, col, "max_price_date")); err != nil {
		return rec, fmt.Errorf("max_price_date: %w", err)
	}
	if rec.WindowMinTime, err = parseTimestamp(field(row, col, "min_price_date")); err != nil {
		return rec, fmt.Errorf("min_price_date: %w", err)
	}
	if rec.DaysToMax, err = parseFloat(field(row, col, "days_to_max")); err != nil {
		return rec, fmt.Errorf("days_to_max: %w", err)
	}
	if rec.DaysToMin, err = parseFloat(field(row, col, "days_to_min")); err != nil {
		return rec, fmt.Errorf("days_to_min: %w", err)
	}
	return rec, nil
}
