package fetch

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// minRenderedTextLength is the extracted text length under which a page is
// assumed to be a JavaScript-rendered SPA shell.
const minRenderedTextLength = 500

// jobContentSelectors are tried in order to locate a posting's description on
// common job board layouts; the document body is the last resort.
var jobContentSelectors = []string{
	".job-description",
	".job-content",
	"#job-description",
	"#job-content",
	".posting-content",
	".job-details",
	"[data-testid='job-description']",
	"main",
	"article",
	".content",
	"#content",
}

// ExtractJobText parses posting HTML and returns the description text with
// navigation chrome stripped out.
func ExtractJobText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find("nav, footer, header, script, style, noscript, .ad, .ads, .sidebar, .cookie-banner, .popup").Remove()

	var content *goquery.Selection
	for _, selector := range jobContentSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil {
		content = doc.Find("body")
	}

	return cleanWhitespace(content.Text()), nil
}

// StripHTML flattens an HTML fragment to its text. Adzuna descriptions carry
// inline markup that would otherwise pollute tokenization.
func StripHTML(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	return cleanWhitespace(doc.Text())
}

func needsBrowserRender(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < minRenderedTextLength
}

// cleanWhitespace trims each line and drops blank ones.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
