package plotpage

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/components"
)

// Page is an HTML report made of go-echarts charts laid out in a flex grid.
type Page struct {
	Title  string
	Theme  Theme
	charts []components.Charter
}

// NewPage creates an empty report page.
func NewPage(title string, theme Theme) *Page {
	return &Page{Title: title, Theme: theme}
}

// Add appends charts to the page.
func (p *Page) Add(charts ...components.Charter) {
	p.charts = append(p.charts, charts...)
}

// Len returns the number of charts on the page.
func (p *Page) Len() int {
	return len(p.charts)
}

// Render writes the page as a standalone HTML document.
func (p *Page) Render(w io.Writer) error {
	page := components.NewPage()
	page.SetPageTitle(p.Title)
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(p.charts...)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	return nil
}
