package report

import (
	"fmt"
	"strings"

	"github.com/hyperifyio/prospect/internal/extract"
)

// UnknownCompany stands in for the company name when the page has no title.
const UnknownCompany = "Unknown Company"

// listSeparator joins multi-value fields wherever they are rendered as text.
const listSeparator = "; "

// Record is the assembled report: everything the renderer needs, flattened
// to plain strings. Created once per run and consumed once.
type Record struct {
	CompanyName string
	Page        extract.PageContent
	Info        extract.AdditionalInfo
	Summary     string
}

// Assemble merges the extracted fields and the summary into one Record.
func Assemble(page extract.PageContent, info extract.AdditionalInfo, summary string) Record {
	name := strings.TrimSpace(page.Title)
	if name == "" {
		name = UnknownCompany
	}
	return Record{
		CompanyName: name,
		Page:        page,
		Info:        info,
		Summary:     summary,
	}
}

// JoinList flattens a multi-value field for narrative or document output.
func JoinList(items []string) string {
	return strings.Join(items, listSeparator)
}

// BuildPrompt renders the extracted fields as one labeled natural-language
// prompt for prompt-style summarization. Section order is fixed.
func BuildPrompt(page extract.PageContent, info extract.AdditionalInfo) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Company Overview: %s\n", page.Description)
	fmt.Fprintf(&sb, "Year Founded: %s\n", info.YearFounded)
	fmt.Fprintf(&sb, "Goals: %s\n", JoinList(info.Goals))
	fmt.Fprintf(&sb, "Objectives: %s\n", JoinList(info.Objectives))
	fmt.Fprintf(&sb, "Innovations: %s\n", JoinList(info.Innovations))
	fmt.Fprintf(&sb, "Contact Information: %s", info.ContactInfo)
	return sb.String()
}
