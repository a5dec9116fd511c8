package typename

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/erraggy/oasmodels/internal/naming"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultConflictTemplate disambiguates a name already taken by another
// canonical model: the second "Page«Item»" becomes "Page«Item»_1".
const DefaultConflictTemplate = "{{.Name}}_{{.Index}}"

// ConflictContext is the data passed to a conflict template.
type ConflictContext struct {
	// Name is the base name produced by the Namer.
	Name string
	// Index counts the models that already claimed Name, starting at 1.
	Index int
	// Type is the full type signature of the model being named.
	Type string
	// Package is the model type's package.
	Package string
	// Group is the resource group that accepted the model.
	Group string
}

// TemplateFuncs returns the functions available in conflict templates.
func TemplateFuncs() template.FuncMap {
	// Title casing keeps the remaining letters as written.
	titleCaser := cases.Title(language.English, cases.NoLower)

	return template.FuncMap{
		"pascal":     naming.ToPascalCase,
		"camel":      naming.ToCamelCase,
		"snake":      naming.ToSnakeCase,
		"kebab":      naming.ToKebabCase,
		"upper":      strings.ToUpper,
		"lower":      strings.ToLower,
		"title":      titleCaser.String,
		"trimPrefix": strings.TrimPrefix,
		"trimSuffix": strings.TrimSuffix,
	}
}

// ParseConflictTemplate parses a conflict template with TemplateFuncs.
// An empty string selects DefaultConflictTemplate.
func ParseConflictTemplate(text string) (*template.Template, error) {
	if text == "" {
		text = DefaultConflictTemplate
	}
	tmpl, err := template.New("conflict").Funcs(TemplateFuncs()).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing conflict template: %w", err)
	}
	return tmpl, nil
}

// ExecuteConflictTemplate renders tmpl for cc.
func ExecuteConflictTemplate(tmpl *template.Template, cc ConflictContext) (string, error) {
	var buf strings.Builder
	if err := tmpl.Execute(&buf, cc); err != nil {
		return "", fmt.Errorf("executing conflict template: %w", err)
	}
	name := strings.TrimSpace(buf.String())
	if name == "" {
		return "", fmt.Errorf("conflict template produced an empty name for %q", cc.Name)
	}
	return name, nil
}
