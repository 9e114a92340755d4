package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/mkrv/govimpact/internal/model"
	"github.com/mkrv/govimpact/internal/pricing"
)

// PriceFileName returns the per-asset price file name inside a price data dir.
func PriceFileName(asset string) string {
	return asset + "_price.csv"
}

// ReadSeries loads one price series file (columns timestamp,price) and returns
// it sorted ascending by time.
func ReadSeries(path string) (pricing.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open price file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read price header: %w", err)
	}
	col, err := columnIndex(header, []string{"timestamp", "price"})
	if err != nil {
		return nil, fmt.Errorf("price file %s: %w", path, err)
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read price rows: %w", err)
	}

	var series pricing.Series
	for _, row := range rows {
		ts, err := parseTimestamp(field(row, col, "timestamp"))
		if err != nil {
			return nil, fmt.Errorf("price file %s: %w", path, err)
		}
		price, err := parseFloat(field(row, col, "price"))
		if err != nil {
			return nil, fmt.Errorf("price file %s: %w", path, err)
		}
		series = append(series, model.PricePoint{Timestamp: ts, Price: price})
	}
	series.Sort()
	return series, nil
}

// LoadSeriesDir builds the per-asset series lookup for the given assets. An
// asset without a price file is simply absent from the map; that is the normal
// state for tokens without an exchange listing, not an error.
func LoadSeriesDir(dir string, assets []string) (map[string]pricing.Series, error) {
	lookup := make(map[string]pricing.Series)
	for _, asset := range assets {
		if _, ok := lookup[asset]; ok {
			continue
		}
		path := filepath.Join(dir, PriceFileName(asset))
		series, err := ReadSeries(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.Debug().Str("asset", asset).Msg("No price data on file")
				continue
			}
			return nil, err
		}
		lookup[asset] = series
	}
	return lookup, nil
}

// WriteSeries writes one price series file.
func WriteSeries(path string, series pricing.Series) error {
	rows := [][]string{{"timestamp", "price"}}
	for _, p := range series {
		rows = append(rows, []string{formatTimestamp(p.Timestamp), formatFloat(p.Price)})
	}
	return writeCSV(path, rows)
}
