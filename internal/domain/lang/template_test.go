package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corey/symtree/internal/domain/model"
)

func TestRenderTemplate_AllValues(t *testing.T) {
	got := RenderTemplate("def {name}{params} {return_type}", map[string]string{
		"name":        "bar",
		"params":      "(self, x: int)",
		"return_type": "-> int",
	})
	assert.Equal(t, "def bar(self, x: int) -> int", got)
}

func TestRenderTemplate_MissingValuesCollapse(t *testing.T) {
	got := RenderTemplate("{visibility} {return_type} {name}{params}", map[string]string{
		"name":   "Builder",
		"params": "(String name)",
	})
	assert.Equal(t, "Builder(String name)", got)
}

func TestRenderTemplate_NilValues(t *testing.T) {
	assert.Equal(t, "def", RenderTemplate("def {name}{params}", nil))
}

func TestRenderTemplate_AdjacentPlaceholders(t *testing.T) {
	got := RenderTemplate("function {name}{params}{return_type}", map[string]string{
		"name":        "Button",
		"params":      "(props: ButtonProps)",
		"return_type": ": JSX.Element",
	})
	assert.Equal(t, "function Button(props: ButtonProps): JSX.Element", got)
}

func TestValidateTemplate(t *testing.T) {
	assert.NoError(t, ValidateTemplate("def {name}{params} {return_type}"))
	assert.NoError(t, ValidateTemplate("plain text"))
	assert.Error(t, ValidateTemplate("{name} {oops}"))
}

func TestDescriptor_TemplateFallback(t *testing.T) {
	d := testDescriptor()
	assert.Equal(t, "{name}", d.Template(model.CategoryClass))

	d.Templates = map[model.SymbolCategory]string{model.CategoryClass: "class {name}"}
	assert.Equal(t, "class {name}", d.Template(model.CategoryClass))
	assert.Equal(t, "{name}", d.Template(model.CategoryMethod))
}
