package htmltable

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// softHyphen is the placeholder text of empty cells.
const softHyphen = "\u00ad"

// Stats describes rendered markup.
type Stats struct {
	Tables       int      // layout tables, excluding the body wrapper
	Cells        int      // layout cells, placeholders included
	Placeholders int      // cells holding only a soft hyphen
	MaxNesting   int      // deepest layout table, 1 for a flat layout
	Images       []string // <img> sources in document order
	Links        []string // <a> targets in document order
}

// Inspect parses rendered markup and counts its layout structure. It
// accepts either a full document or a bare table fragment.
func Inspect(markup string) (Stats, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return Stats{}, err
	}

	var st Stats
	tables := doc.Find("table").Not("#bodyTable")
	st.Tables = tables.Length()
	tables.Each(func(_ int, s *goquery.Selection) {
		depth := s.ParentsFiltered("table").Not("#bodyTable").Length() + 1
		if depth > st.MaxNesting {
			st.MaxNesting = depth
		}
	})

	cells := tables.Find("td")
	st.Cells = cells.Length()
	cells.Each(func(_ int, s *goquery.Selection) {
		if s.Children().Length() == 0 && strings.TrimSpace(s.Text()) == softHyphen {
			st.Placeholders++
		}
	})

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok {
			st.Images = append(st.Images, src)
		}
	})
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		st.Links = append(st.Links, href)
	})
	return st, nil
}
