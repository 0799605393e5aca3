package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"
)

// NotAvailable is the sentinel substituted for any field the page does not
// carry. Downstream assembly always needs a printable value, so extractors
// return this instead of an empty/absent result.
const NotAvailable = "Not available"

// PageContent holds the directly extracted page fields.
type PageContent struct {
	Title       string
	Description string
	BodyText    string
}

// AdditionalInfo holds the heuristic company fields. Missing data is
// represented by NotAvailable, never by nil; the keyword lists contain a
// single NotAvailable entry when nothing matched so join logic stays uniform.
type AdditionalInfo struct {
	YearFounded string
	Goals       []string
	Objectives  []string
	Innovations []string
	ContactInfo string
}

// KeywordQuery configures one keyword-sentence extraction pass. Matching is
// case-insensitive substring, OR semantics across the set.
type KeywordQuery struct {
	Keywords []string
}

// The three fixed queries the report cares about.
var (
	GoalQuery       = KeywordQuery{Keywords: []string{"goal", "mission"}}
	ObjectiveQuery  = KeywordQuery{Keywords: []string{"objective", "vision"}}
	InnovationQuery = KeywordQuery{Keywords: []string{"innovation", "new technology"}}
)

var yearRe = regexp.MustCompile(`\b\d{4}\b`)

// Page extracts title, meta description and body text in one pass.
func Page(doc *goquery.Document) PageContent {
	return PageContent{
		Title:       Title(doc),
		Description: Description(doc),
		BodyText:    BodyText(doc),
	}
}

// Additional extracts every heuristic field.
func Additional(doc *goquery.Document) AdditionalInfo {
	return AdditionalInfo{
		YearFounded: YearFounded(doc),
		Goals:       KeywordSentences(doc, GoalQuery),
		Objectives:  KeywordSentences(doc, ObjectiveQuery),
		Innovations: KeywordSentences(doc, InnovationQuery),
		ContactInfo: ContactInfo(doc),
	}
}

// Title returns the first <title> element's text, or "" when absent.
func Title(doc *goquery.Document) string {
	return cleanText(doc.Find("title").First().Text())
}

// Description returns the content attribute of <meta name="description">,
// or "" when absent.
func Description(doc *goquery.Document) string {
	content, _ := doc.Find(`meta[name="description"]`).First().Attr("content")
	return cleanText(content)
}

// BodyText concatenates the text of every paragraph in document order,
// joined with single spaces.
func BodyText(doc *goquery.Document) string {
	var parts []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if t := cleanText(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, " ")
}

// YearFounded scans paragraphs in document order for the first one
// mentioning "founded" and returns the first four-digit run in it.
// Only the first matching paragraph is considered.
func YearFounded(doc *goquery.Document) string {
	year := NotAvailable
	doc.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := cleanText(s.Text())
		if !strings.Contains(strings.ToLower(text), "founded") {
			return true
		}
		if m := yearRe.FindString(text); m != "" {
			year = m
		}
		return false
	})
	return year
}

// KeywordSentences collects the full text of every paragraph containing at
// least one of the query's keywords. An empty result becomes a one-element
// list holding NotAvailable so callers can join unconditionally.
func KeywordSentences(doc *goquery.Document, q KeywordQuery) []string {
	var out []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		text := cleanText(s.Text())
		lower := strings.ToLower(text)
		for _, kw := range q.Keywords {
			if strings.Contains(lower, kw) {
				out = append(out, text)
				break
			}
		}
	})
	if len(out) == 0 {
		return []string{NotAvailable}
	}
	return out
}

// ContactInfo collects every mailto: anchor target, strips the scheme, and
// joins the addresses with ", ".
func ContactInfo(doc *goquery.Document) string {
	var addrs []string
	doc.Find(`a[href^="mailto:"]`).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		addr := strings.TrimSpace(strings.TrimPrefix(href, "mailto:"))
		if addr != "" {
			addrs = append(addrs, addr)
		}
	})
	if len(addrs) == 0 {
		return NotAvailable
	}
	return strings.Join(addrs, ", ")
}

// cleanText NFC-normalizes and collapses whitespace runs to single spaces.
// Scraped pages mix composed/decomposed forms and stuff newlines and tabs
// into element text.
func cleanText(s string) string {
	s = norm.NFC.String(s)
	var b strings.Builder
	lastSpace := true
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return strings.TrimRight(b.String(), " ")
}
