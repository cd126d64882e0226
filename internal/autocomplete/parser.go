package autocomplete

import (
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
)

// Selectors and attributes of the autocomplete HTML menu.
const (
	itemSelector       = "li.ui-menu-item"
	valueAttr          = "data-autocomplete-value"
	typeAttr           = "data-autocomplete-type"
	postCountSelector  = ".post-count"
	antecedentSelector = ".autocomplete-antecedent span:nth-child(2)"
)

// Parse reads an autocomplete HTML fragment and returns one suggestion per
// menu item in document order. Missing or malformed parts of an item leave
// the corresponding field empty; only a failing reader is an error.
func Parse(r io.Reader) ([]Suggestion, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read autocomplete response")
	}
	return parseDocument(doc), nil
}

// ParseString is Parse for an in-memory fragment.
func ParseString(html string) []Suggestion {
	suggestions, err := Parse(strings.NewReader(html))
	if err != nil {
		return nil
	}
	return suggestions
}

func parseDocument(doc *goquery.Document) []Suggestion {
	items := doc.Find(itemSelector)
	suggestions := make([]Suggestion, 0, items.Length())

	items.Each(func(_ int, item *goquery.Selection) {
		value := item.AttrOr(valueAttr, "")
		s := Suggestion{
			Label:      value,
			SearchName: value,
			Type:       item.AttrOr(typeAttr, ""),
			Category:   parseCategory(item.Find("a").First()),
		}

		if count := item.Find(postCountSelector).First(); count.Length() > 0 {
			s.PostCount = strings.TrimSpace(count.Text())
		}
		if ante := item.Find(antecedentSelector).First(); ante.Length() > 0 {
			s.Antecedent = strings.TrimSpace(ante.Text())
		}

		suggestions = append(suggestions, s)
	})

	return suggestions
}

// parseCategory reads the category from the first class of the item link,
// e.g. "tag-type-4" -> 4. Anything unparseable yields CategoryGeneral.
func parseCategory(link *goquery.Selection) int {
	if link.Length() == 0 {
		return CategoryGeneral
	}
	classes := strings.Fields(link.AttrOr("class", ""))
	if len(classes) == 0 {
		return CategoryGeneral
	}

	first := classes[0]
	suffix := first[strings.LastIndex(first, "-")+1:]
	return leadingInt(suffix)
}

// leadingInt parses the leading decimal digits of s, or returns 0.
func leadingInt(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
