package htmlitems

import "html/template"

// Default templates of a Writer.
//
// Header cells carry the property id of their column
// as data-property attribute and body rows carry
// the index of their view row as data-row attribute.
var (
	HeaderTemplate = template.Must(template.New("header").Parse(
		"<table{{if .TableClass}} class='{{.TableClass}}'{{end}}>\n" +
			"{{if .Caption}}  <caption>{{.Caption}}</caption>\n{{end}}",
	))

	RowTemplate = template.Must(template.New("row").Parse("" +
		"{{if .IsHeaderRow}}" +
		"  <tr>{{range .Cells}}<th data-property='{{.PropertyID}}'>{{.HTML}}</th>{{end}}</tr>\n" +
		"{{else}}" +
		"  <tr data-row='{{.ViewRow}}'>{{range .Cells}}<td>{{.HTML}}</td>{{end}}</tr>\n" +
		"{{end}}",
	))

	FooterTemplate = template.Must(template.New("footer").Parse(
		"</table>",
	))
)

// TemplateContext is passed to the header and footer templates.
type TemplateContext struct {
	TableClass string
	Caption    string
}

// CellContext is a formatted cell of a RowTemplateContext.
type CellContext struct {
	PropertyID string
	HTML       template.HTML
	IsNil      bool
}

// RowTemplateContext is passed to the row template
// for the header row and every row of the view.
type RowTemplateContext struct {
	TemplateContext

	IsHeaderRow bool
	// RowIndex counts the written rows including the header row
	RowIndex int
	// ViewRow is the row index of the view, -1 for the header row
	ViewRow int
	Cells   []CellContext
}
