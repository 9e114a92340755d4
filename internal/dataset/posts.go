package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/mkrv/govimpact/internal/model"
)

var postColumns = []string{"protocol", "post_id", "timestamp", "title", "description", "discussion_link"}

// PostReadReport accounts for rows of the posts file that did not survive
// ingestion. Malformed timestamps are rejected here, outside the impact core.
type PostReadReport struct {
	Rows      int
	Malformed int
}

// ReadPosts loads a posts CSV. Rows with unparsable timestamps are dropped and
// counted, never fatal.
func ReadPosts(path string) ([]model.Post, PostReadReport, error) {
	var report PostReadReport

	f, err := os.Open(path)
	if err != nil {
		return nil, report, fmt.Errorf("open posts file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, report, fmt.Errorf("read posts header: %w", err)
	}
	col, err := columnIndex(header, postColumns[:3]) // link, title, description optional
	if err != nil {
		return nil, report, fmt.Errorf("posts file: %w", err)
	}

	var posts []model.Post
	rows, err := r.ReadAll()
	if err != nil {
		return nil, report, fmt.Errorf("read posts rows: %w", err)
	}
	for _, row := range rows {
		report.Rows++
		ts, err := parseTimestamp(field(row, col, "timestamp"))
		if err != nil {
			report.Malformed++
			continue
		}
		posts = append(posts, model.Post{
			Protocol:       field(row, col, "protocol"),
			PostID:         field(row, col, "post_id"),
			Timestamp:      ts,
			Title:          field(row, col, "title"),
			Description:    field(row, col, "description"),
			DiscussionLink: field(row, col, "discussion_link"),
		})
	}
	return posts, report, nil
}

// WritePosts writes a posts CSV in the canonical column order.
func WritePosts(path string, posts []model.Post) error {
	rows := [][]string{postColumns}
	for _, p := range posts {
		rows = append(rows, postRow(p))
	}
	return writeCSV(path, rows)
}

func postRow(p model.Post) []string {
	return []string{
		p.Protocol,
		p.PostID,
		formatTimestamp(p.Timestamp),
		p.Title,
		p.Description,
		p.DiscussionLink,
	}
}

// FilterByDateRange keeps posts inside [from, to], endpoints included.
func FilterByDateRange(posts []model.Post, from, to time.Time) []model.Post {
	var out []model.Post
	for _, p := range posts {
		if !p.Timestamp.Before(from) && !p.Timestamp.After(to) {
			out = append(out, p)
		}
	}
	return out
}

// columnIndex maps header names to positions, requiring the given columns.
func columnIndex(header, required []string) (map[string]int, error) {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, name := range required {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return col, nil
}

func field(row []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
