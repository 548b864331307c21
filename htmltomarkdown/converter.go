package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/readerview"
)

// Ensure Converter implements readerview.Converter at compile time.
var _ readerview.Converter = (*Converter)(nil)

// Converter turns cleaned article HTML into Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter with CommonMark and table support.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms an HTML fragment into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", readerview.Errorf(readerview.EINVALID, "empty HTML input")
	}
	return c.conv.ConvertString(html)
}

// ConvertArticle renders an article as Markdown with its title as the top
// level heading. The article content never carries an h1 of its own.
func ConvertArticle(conv readerview.Converter, a *readerview.Article) (string, error) {
	body, err := conv.Convert(a.Content)
	if err != nil {
		return "", err
	}
	if a.Title == "" {
		return body, nil
	}
	return "# " + a.Title + "\n\n" + strings.TrimSpace(body) + "\n", nil
}
