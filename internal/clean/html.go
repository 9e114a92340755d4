// Package clean normalizes governance post bodies. Forum exports carry raw
// HTML; the analysis stages want plain text.
package clean

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTML strips markup from a post body and returns the readable text. Input
// that fails to parse is returned unchanged rather than dropped.
func HTML(body string) string {
	if !strings.ContainsRune(body, '<') {
		return strings.TrimSpace(body)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return strings.TrimSpace(body)
	}
	return strings.TrimSpace(doc.Text())
}
