package preview

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
)

// PagePadding is the fixed inner margin of the page in layout units.
const PagePadding = 56.0

//go:embed templates/*.gohtml
var templatesFS embed.FS

var pageTemplate = template.Must(
	template.New("page.gohtml").
		Funcs(template.FuncMap{"px": px}).
		ParseFS(templatesFS, "templates/page.gohtml"),
)

type pageData struct {
	Doc     Document
	Layout  Layout
	Padding float64
}

// RenderHTML writes a standalone page. The page keeps its natural size inside a
// box of the scaled size; the print stylesheet drops the scaling.
func RenderHTML(w io.Writer, doc Document, layout Layout) error {
	err := pageTemplate.Execute(w, pageData{
		Doc:     doc,
		Layout:  layout,
		Padding: PagePadding,
	})
	if err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}

	return nil
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
