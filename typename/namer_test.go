package typename

import (
	"testing"

	"github.com/erraggy/oasmodels/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultNamer_Name(t *testing.T) {
	item := model.ResolvedType{Package: "com.acme", Name: "Item"}
	page := model.ResolvedType{Package: "com.acme", Name: "Page", Args: []model.ResolvedType{item}}
	mapType := model.NewType("Map", model.NewType("string"), model.NewType("Page", item))

	tests := []struct {
		name string
		cfg  Config
		typ  model.ResolvedType
		want string
	}{
		{"plain", DefaultConfig(), item, "Item"},
		{"guillemets", DefaultConfig(), page, "Page«Item»"},
		{"nested guillemets", DefaultConfig(), mapType, "Map«string,Page«Item»»"},
		{"angle", Config{Generic: GenericNamingAngleBrackets}, page, "Page<Item>"},
		{"of", Config{Generic: GenericNamingOf}, mapType, "MapOfStringAndPageOfItem"},
		{"underscore", Config{Generic: GenericNamingUnderscore}, page, "Page_Item_"},
		{"flattened", Config{Generic: GenericNamingFlattened}, page, "PageItem"},
		{"qualified", Config{Qualified: true}, page, "com.acme.Page«Item»"},
		{"snake", Config{Casing: CasingSnake}, model.NewType("OrderLine"), "order_line"},
		{"pascal", Config{Casing: CasingPascal}, model.NewType("order_line"), "OrderLine"},
		{"camel", Config{Casing: CasingCamel}, model.NewType("OrderLine"), "orderLine"},
		{"kebab", Config{Casing: CasingKebab}, model.NewType("OrderLine"), "order-line"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.cfg).Name(tt.typ))
		})
	}
}

func TestDefaultNamer_TypeName(t *testing.T) {
	tc := model.NewRootContext(model.NewType("Order"), nil, false)
	assert.Equal(t, "Order", Default().TypeName(tc))
	assert.Equal(t, "", Default().TypeName(nil))

	var n Namer = NamerFunc(func(tc *model.TypeContext) string { return "X" + tc.Type.Name })
	assert.Equal(t, "XOrder", n.TypeName(tc))
}

func TestParseGenericNamingStrategy(t *testing.T) {
	for _, name := range ValidGenericNamingStrategies() {
		_, err := ParseGenericNamingStrategy(name)
		assert.NoError(t, err, name)
	}
	st, err := ParseGenericNamingStrategy(" OF ")
	require.NoError(t, err)
	assert.Equal(t, GenericNamingOf, st)

	_, err = ParseGenericNamingStrategy("curly")
	assert.ErrorContains(t, err, "unknown generic naming strategy")
}

func TestParseCasing(t *testing.T) {
	c, err := ParseCasing("snake")
	require.NoError(t, err)
	assert.Equal(t, CasingSnake, c)

	c, err = ParseCasing("")
	require.NoError(t, err)
	assert.Equal(t, CasingAsDeclared, c)

	_, err = ParseCasing("shouting")
	assert.Error(t, err)
}

func TestConflictTemplate(t *testing.T) {
	tmpl, err := ParseConflictTemplate("")
	require.NoError(t, err)
	name, err := ExecuteConflictTemplate(tmpl, ConflictContext{Name: "Page«Item»", Index: 1})
	require.NoError(t, err)
	assert.Equal(t, "Page«Item»_1", name)

	tmpl, err = ParseConflictTemplate("{{pascal .Package}}{{.Name}}")
	require.NoError(t, err)
	name, err = ExecuteConflictTemplate(tmpl, ConflictContext{Name: "Order", Package: "billing.v2", Index: 1})
	require.NoError(t, err)
	assert.Equal(t, "BillingV2Order", name)

	tmpl, err = ParseConflictTemplate("{{title .Group}}{{.Name}}")
	require.NoError(t, err)
	name, err = ExecuteConflictTemplate(tmpl, ConflictContext{Name: "Order", Group: "billing"})
	require.NoError(t, err)
	assert.Equal(t, "BillingOrder", name)

	_, err = ParseConflictTemplate("{{.Name")
	assert.Error(t, err)

	tmpl, err = ParseConflictTemplate("{{.Package}}")
	require.NoError(t, err)
	_, err = ExecuteConflictTemplate(tmpl, ConflictContext{Name: "Order"})
	assert.ErrorContains(t, err, "empty name")
}
