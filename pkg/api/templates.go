package api

import (
	"embed"
	"html/template"

	"github.com/digitalocean/contact-form/pkg/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the page templates
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"inputType": inputType,
	}).ParseFS(templateFS, "templates/*.html")
}

func inputType(kind models.FieldKind) string {
	switch kind {
	case models.KindEmail:
		return "email"
	case models.KindNumber:
		return "number"
	case models.KindURL:
		return "url"
	case models.KindCheckbox:
		return "checkbox"
	case models.KindDate:
		return "date"
	case models.KindDateTime:
		return "datetime-local"
	case models.KindHidden:
		return "hidden"
	}
	return "text"
}
