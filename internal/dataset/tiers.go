package dataset

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"

	"github.com/mkrv/govimpact/internal/model"
)

// TierFileName builds the conventional output name for one tier partition,
// e.g. controlled_risk_posts_20pct.csv.
func TierFileName(family string, threshold float64) string {
	return fmt.Sprintf("%s_posts_%.0fpct.csv", family, threshold)
}

// WriteControlledRiskTier writes one controlled-risk partition: impact columns
// plus the gain-to-risk ratio, +Inf rendered as "inf".
func WriteControlledRiskTier(path string, records []model.ClassifiedRecord) error {
	columns := append(append([]string{}, impactColumns...), "gain_risk_ratio")
	rows := [][]string{columns}
	for _, r := range records {
		rows = append(rows, append(impactRow(r.ImpactRecord), formatRatio(r.GainRiskRatio)))
	}
	return writeCSV(path, rows)
}

// WriteProfitTier writes one stop-loss-aware profit partition: impact columns
// plus the realized gain column.
func WriteProfitTier(path string, records []model.ClassifiedRecord) error {
	columns := append(append([]string{}, impactColumns...), "actual_gain_pct")
	rows := [][]string{columns}
	for _, r := range records {
		rows = append(rows, append(impactRow(r.ImpactRecord), formatFloat(r.ActualGainPct)))
	}
	return writeCSV(path, rows)
}

func formatRatio(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return formatFloat(v)
}

// ReadTier loads a tier partition back as classified records. The ratio and
// realized-gain columns are optional so both tier families parse with the same
// reader.
func ReadTier(path string) ([]model.ClassifiedRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tier file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read tier header: %w", err)
	}
	col, err := columnIndex(header, []string{"protocol", "timestamp", "max_percent_gain", "min_percent_loss"})
	if err != nil {
		return nil, fmt.Errorf("tier file: %w", err)
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read tier rows: %w", err)
	}

	var records []model.ClassifiedRecord
	for i, row := range rows {
		impact, err := parseImpactRow(row, col)
		if err != nil {
			return nil, fmt.Errorf("tier row %d: %w", i+2, err)
		}
		rec := model.ClassifiedRecord{ImpactRecord: impact, ActualGainPct: impact.PercentGain}
		if s := field(row, col, "gain_risk_ratio"); s != "" {
			if rec.GainRiskRatio, err = parseFloat(s); err != nil {
				return nil, fmt.Errorf("tier row %d: gain_risk_ratio: %w", i+2, err)
			}
		}
		if s := field(row, col, "actual_gain_pct"); s != "" {
			if rec.ActualGainPct, err = parseFloat(s); err != nil {
				return nil, fmt.Errorf("tier row %d: actual_gain_pct: %w", i+2, err)
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
