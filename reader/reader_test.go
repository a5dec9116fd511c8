package reader

import (
	"context"
	"errors"
	"testing"

	"github.com/erraggy/oasmodels/model"
	"github.com/erraggy/oasmodels/modelerrors"
	"github.com/erraggy/oasmodels/typename"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReader(t *testing.T, src ModelSource, opts ...Option) *Reader {
	t.Helper()
	r, err := New(src, fakeProvider{}, opts...)
	require.NoError(t, err)
	return r
}

func TestRead_OrderReceiptScenario(t *testing.T) {
	var scan Scan
	scan.Add(returning("getOrder", "orders", "Order"))
	scan.Add(returning("getReceipt", "receipts", "Receipt"))

	result, err := newTestReader(t, newFakeSource(orderDecls())).Read(context.Background(), &scan)
	require.NoError(t, err)

	require.Len(t, result.Groups, 2)
	assert.Equal(t, []string{"Item", "Order"}, modelNames(result.Groups[0].Models))
	assert.Equal(t, []string{"Receipt"}, modelNames(result.Groups[1].Models))
	assert.Len(t, result.Models(), 3)

	order := result.Groups[0].Models[1]
	item := result.Groups[0].Models[0]
	receipt := result.Groups[1].Models[0]

	orderProp, ok := receipt.Property("order")
	require.True(t, ok)
	assert.Equal(t, order.ID, orderProp.Ref.ModelID)
	assert.Equal(t, "Order", orderProp.Ref.Type)

	itemsProp, ok := order.Property("items")
	require.True(t, ok)
	assert.Equal(t, item.ID, itemsProp.Ref.Item.ModelID)
	assert.Equal(t, "List«Item»", itemsProp.Ref.String())

	dedup := result.Warnings.ByCategory(WarnModelDeduplicated)
	assert.Len(t, dedup, 2)
	assert.Equal(t, 2, result.Stats.Deduplicated)
	assert.Equal(t, 3, result.Stats.Canonical)
	assert.Equal(t, 2, result.Stats.Branches)
	assert.Equal(t, 5, result.Stats.Collected)
}

func TestRead_NoDanglingRefs(t *testing.T) {
	var scan Scan
	scan.Add(returning("getOrder", "orders", "Order"))
	scan.Add(returning("getReceipt", "receipts", "Receipt"))
	scan.Add(returning("listItems", "catalog", "Item"))

	result, err := newTestReader(t, newFakeSource(orderDecls())).Read(context.Background(), &scan)
	require.NoError(t, err)

	ids := make(map[string]bool)
	for _, m := range result.Models() {
		ids[m.ID] = true
	}
	for _, m := range result.Models() {
		for _, ref := range m.Refs() {
			for _, id := range ref.ModelIDs() {
				assert.True(t, ids[id], "model %s references missing %s", m.Name, id)
			}
		}
	}
	assert.Empty(t, result.Groups[2].Models, "Item was already accepted in orders")
}

func TestRead_SameGroupRepeatedOperation(t *testing.T) {
	var scan Scan
	scan.Add(returning("getOrder", "orders", "Order"))
	scan.Add(returning("getOrderAgain", "orders", "Order"))

	result, err := newTestReader(t, newFakeSource(orderDecls())).Read(context.Background(), &scan)
	require.NoError(t, err)

	require.Len(t, result.Groups, 1)
	assert.Equal(t, []string{"Item", "Order"}, modelNames(result.Groups[0].Models))
	// Same group and same return flag yields the same ids, which is not a
	// deduplication into a different model.
	assert.Empty(t, result.Warnings.ByCategory(WarnModelDeduplicated))
}

func TestRead_BodyParameterDeduplicatedAgainstResponse(t *testing.T) {
	op := returning("updateOrder", "orders", "Order")
	op.Parameters = []model.Parameter{{Name: "body", In: "body", Type: model.NewType("Order"), Required: true}}

	result, err := newTestReader(t, newFakeSource(orderDecls())).Read(context.Background(), &Scan{
		Groups: []GroupScan{{Group: model.ResourceGroup{Name: "orders"}, Operations: []*model.Operation{op}}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Item", "Order"}, modelNames(result.Groups[0].Models))
	require.Len(t, result.Warnings.ByCategory(WarnModelDeduplicated), 2)

	// The request-side Order id resolves to the response-side name.
	requestID := model.IDFor(op.Group, false, model.NewType("Order"))
	name, ok := result.NameFor(requestID)
	require.True(t, ok)
	assert.Equal(t, "Order", name)
}

func TestRead_MissingPrimaryModel(t *testing.T) {
	var scan Scan
	scan.Add(returning("ping", "health", "string"))

	result, err := newTestReader(t, newFakeSource(orderDecls())).Read(context.Background(), &scan)
	require.NoError(t, err)

	assert.Empty(t, result.Models())
	missing := result.Warnings.ByCategory(WarnMissingPrimaryModel)
	require.Len(t, missing, 1)
	assert.Equal(t, "health", missing[0].Group)
	assert.Equal(t, "ping", missing[0].Operation)
}

func TestRead_IgnorableTypes(t *testing.T) {
	t.Run("per operation", func(t *testing.T) {
		op := returning("getOrder", "orders", "Order")
		op.Ignorable = []model.ResolvedType{model.NewType("Item")}
		var scan Scan
		scan.Add(op)

		result, err := newTestReader(t, newFakeSource(orderDecls())).Read(context.Background(), &scan)
		require.NoError(t, err)

		require.Equal(t, []string{"Order"}, modelNames(result.Models()))
		items, _ := result.Models()[0].Property("items")
		assert.False(t, items.Ref.Item.IsModel())
		assert.Equal(t, "List«Item»", items.Ref.String())
	})

	t.Run("global option", func(t *testing.T) {
		var scan Scan
		scan.Add(returning("getReceipt", "receipts", "Receipt"))

		r := newTestReader(t, newFakeSource(orderDecls()), WithIgnorableTypes(model.NewType("Item")))
		result, err := r.Read(context.Background(), &scan)
		require.NoError(t, err)
		assert.Equal(t, []string{"Order", "Receipt"}, modelNames(result.Models()))
	})
}

func TestRead_NameDisambiguation(t *testing.T) {
	// Ignoring Item in one group makes its Order structurally different from
	// the Order of the other group, so both become canonical.
	plain := returning("getOrder", "legacy", "Order")
	plain.Ignorable = []model.ResolvedType{model.NewType("Item")}
	var scan Scan
	scan.Add(plain)
	scan.Add(returning("getOrder2", "orders", "Order"))

	result, err := newTestReader(t, newFakeSource(orderDecls())).Read(context.Background(), &scan)
	require.NoError(t, err)

	assert.Equal(t, []string{"Order"}, modelNames(result.Groups[0].Models))
	assert.Equal(t, []string{"Item", "Order_1"}, modelNames(result.Groups[1].Models))

	renamed := result.Warnings.ByCategory(WarnNameDisambiguated)
	require.Len(t, renamed, 1)
	assert.Equal(t, result.Groups[1].Models[1].ID, renamed[0].ModelID)
	assert.Equal(t, "Order_1", renamed[0].Context["final_name"])

	t.Run("custom template", func(t *testing.T) {
		r := newTestReader(t, newFakeSource(orderDecls()), WithConflictTemplate("{{title .Group}}{{.Name}}"))
		result, err := r.Read(context.Background(), &scan)
		require.NoError(t, err)
		assert.Equal(t, []string{"Item", "OrdersOrder"}, modelNames(result.Groups[1].Models))
	})
}

func TestRead_SameGroupIgnorableVariants(t *testing.T) {
	// Within one group, an operation that ignores Item sees a different Order
	// than one that does not. Both are kept as canonical models.
	summary := returning("getOrderSummary", "orders", "Order")
	summary.Ignorable = []model.ResolvedType{model.NewType("Item")}
	var scan Scan
	scan.Add(summary)
	scan.Add(returning("getOrder", "orders", "Order"))
	scan.Add(returning("getOrderAgain", "orders", "Order"))

	result, err := newTestReader(t, newFakeSource(orderDecls())).Read(context.Background(), &scan)
	require.NoError(t, err)

	require.Len(t, result.Groups, 1)
	models := result.Groups[0].Models
	assert.Equal(t, []string{"Order", "Item", "Order_1"}, modelNames(models))
	assert.NotEqual(t, models[0].ID, models[2].ID)
	assert.Equal(t, 3, result.Stats.Canonical)

	plain, _ := models[0].Property("items")
	assert.False(t, plain.Ref.Item.IsModel())
	full, _ := models[2].Property("items")
	assert.Equal(t, models[1].ID, full.Ref.Item.ModelID)

	renamed := result.Warnings.ByCategory(WarnNameDisambiguated)
	require.Len(t, renamed, 1)
	assert.Equal(t, models[2].ID, renamed[0].ModelID)

	assert.Equal(t, models[0].ID, model.IDFor(summary.Group, true, model.NewType("Order"), model.NewType("Item")))
	assert.Equal(t, models[2].ID, model.IDFor(summary.Group, true, model.NewType("Order")))
}

func TestRead_CustomNamer(t *testing.T) {
	decls := map[string][]fakeProp{
		"Page":  {{name: "content", typ: "Entry", list: true}},
		"Entry": {{name: "value", typ: "string"}},
	}
	var scan Scan
	scan.Add(returning("list", "entries", "Page"))

	namer := typename.New(typename.Config{Casing: typename.CasingSnake})
	result, err := newTestReader(t, newFakeSource(decls), WithNamer(namer)).Read(context.Background(), &scan)
	require.NoError(t, err)

	assert.Equal(t, []string{"entry", "page"}, modelNames(result.Models()))
	content, _ := result.Models()[1].Property("content")
	assert.Equal(t, "List«entry»", content.Ref.String())
}

func TestRead_CyclicBranch(t *testing.T) {
	decls := map[string][]fakeProp{
		"Parent": {{name: "child", typ: "Child"}},
		"Child":  {{name: "parent", typ: "Parent"}},
	}
	var scan Scan
	scan.Add(returning("getParent", "family", "Parent"))

	_, err := newTestReader(t, newFakeSource(decls)).Read(context.Background(), &scan)
	require.Error(t, err)
	assert.True(t, errors.Is(err, modelerrors.ErrCyclicBranch))

	var cycleErr *modelerrors.CycleError
	require.True(t, errors.As(err, &cycleErr))
	assert.Equal(t, "family", cycleErr.Group)
	assert.Equal(t, "getParent", cycleErr.Operation)
	assert.Len(t, cycleErr.IDs, 2)
}

func TestRead_SelfReference(t *testing.T) {
	decls := map[string][]fakeProp{
		"Node": {{name: "next", typ: "Node"}, {name: "value", typ: "int"}},
	}
	var scan Scan
	scan.Add(returning("getNode", "graph", "Node"))
	scan.Add(returning("getNode2", "other", "Node"))

	result, err := newTestReader(t, newFakeSource(decls)).Read(context.Background(), &scan)
	require.NoError(t, err)

	require.Len(t, result.Models(), 1)
	node := result.Models()[0]
	next, _ := node.Property("next")
	assert.Equal(t, node.ID, next.Ref.ModelID)
	assert.Equal(t, "Node", next.Ref.Type)
}

func TestRead_CollaboratorErrors(t *testing.T) {
	var scan Scan
	scan.Add(returning("getOrder", "orders", "Order"))

	t.Run("model source", func(t *testing.T) {
		src := newFakeSource(orderDecls())
		src.err = errBoom
		_, err := newTestReader(t, src).Read(context.Background(), &scan)
		require.Error(t, err)
		assert.True(t, errors.Is(err, modelerrors.ErrSource))
		assert.True(t, errors.Is(err, errBoom))
	})

	t.Run("context provider", func(t *testing.T) {
		r, err := New(newFakeSource(orderDecls()), fakeProvider{err: errBoom})
		require.NoError(t, err)
		_, err = r.Read(context.Background(), &scan)
		require.Error(t, err)
		assert.True(t, errors.Is(err, modelerrors.ErrSource))
		assert.ErrorContains(t, err, "context provider")
	})
}

func TestRead_ParallelNamingMatchesSequential(t *testing.T) {
	var scan Scan
	for _, g := range []string{"a", "b", "c", "d"} {
		scan.Add(returning("getReceipt"+g, g, "Receipt"))
		scan.Add(returning("getOrder"+g, g, "Order"))
	}
	decls := orderDecls()

	seq, err := newTestReader(t, newFakeSource(decls)).Read(context.Background(), &scan)
	require.NoError(t, err)
	par, err := newTestReader(t, newFakeSource(decls), WithParallelNaming(true)).Read(context.Background(), &scan)
	require.NoError(t, err)

	assert.Equal(t, seq.Views(), par.Views())
	assert.Len(t, par.Models(), 3)
}

func TestRead_NamingConsistencyOfAliases(t *testing.T) {
	var scan Scan
	scan.Add(returning("getOrder", "orders", "Order"))
	scan.Add(returning("getOrder", "archive", "Order"))

	result, err := newTestReader(t, newFakeSource(orderDecls())).Read(context.Background(), &scan)
	require.NoError(t, err)

	winner := model.IDFor(model.ResourceGroup{Name: "orders"}, true, model.NewType("Order"))
	loser := model.IDFor(model.ResourceGroup{Name: "archive"}, true, model.NewType("Order"))
	wn, ok := result.NameFor(winner)
	require.True(t, ok)
	ln, ok := result.NameFor(loser)
	require.True(t, ok)
	assert.Equal(t, wn, ln)
	assert.Empty(t, result.Groups[1].Models)
}

func TestRead_Idempotence(t *testing.T) {
	var scan Scan
	scan.Add(returning("getOrder", "orders", "Order"))
	scan.Add(returning("getReceipt", "receipts", "Receipt"))
	src := newFakeSource(orderDecls())

	result, err := newTestReader(t, src).Read(context.Background(), &scan)
	require.NoError(t, err)

	index, err := IndexFrom(result.Groups)
	require.NoError(t, err)
	before := index.Len()

	registry := NewRegistry()
	collector := &Collector{Source: src, Registry: registry}
	merger := &Merger{Index: index, Registry: registry, Equal: model.Equal}
	for _, gs := range scan.Groups {
		for _, op := range gs.Operations {
			roots, err := fakeProvider{}.ModelContexts(op)
			require.NoError(t, err)
			for _, root := range roots {
				b, err := collector.Collect(root, nil)
				require.NoError(t, err)
				merged, err := merger.Merge(b)
				require.NoError(t, err)
				assert.Empty(t, merged.Accepted)
			}
		}
	}
	assert.Equal(t, before, index.Len())
}

func TestRead_Cancelled(t *testing.T) {
	var scan Scan
	scan.Add(returning("getOrder", "orders", "Order"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestReader(t, newFakeSource(orderDecls())).Read(ctx, &scan)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil, fakeProvider{})
	assert.ErrorIs(t, err, modelerrors.ErrConfig)

	_, err = New(newFakeSource(nil), nil)
	assert.ErrorIs(t, err, modelerrors.ErrConfig)

	_, err = New(newFakeSource(nil), fakeProvider{}, WithConflictTemplate("{{.Name"))
	assert.ErrorIs(t, err, modelerrors.ErrConfig)

	_, err = New(newFakeSource(nil), fakeProvider{}, WithNamer(nil))
	assert.ErrorIs(t, err, modelerrors.ErrConfig)

	_, err = New(newFakeSource(nil), fakeProvider{}, WithIgnorableTypes(model.ResolvedType{}))
	assert.ErrorIs(t, err, modelerrors.ErrConfig)

	r, err := New(newFakeSource(nil), fakeProvider{})
	require.NoError(t, err)
	_, err = r.Read(context.Background(), nil)
	assert.ErrorIs(t, err, modelerrors.ErrConfig)
}

func TestWithConfig_FillsDefaults(t *testing.T) {
	r := newTestReader(t, newFakeSource(nil), WithConfig(Config{ParallelNaming: true}))
	cfg := r.Config()
	assert.True(t, cfg.ParallelNaming)
	assert.NotNil(t, cfg.Namer)
	assert.NotNil(t, cfg.Equal)
	assert.Equal(t, typename.DefaultConflictTemplate, cfg.ConflictTemplate)
	assert.IsType(t, NopLogger{}, cfg.Logger)
}

func TestResult_Views(t *testing.T) {
	var scan Scan
	scan.Add(returning("getOrder", "orders", "Order"))

	result, err := newTestReader(t, newFakeSource(orderDecls())).Read(context.Background(), &scan)
	require.NoError(t, err)

	views := result.Views()
	require.Len(t, views, 1)
	assert.Equal(t, "orders", views[0].Group)
	require.Len(t, views[0].Models, 2)
	order := views[0].Models[1]
	assert.Equal(t, "Order", order.Name)
	require.Len(t, order.Properties, 2)
	assert.Equal(t, PropertyView{Name: "id", Type: "int"}, order.Properties[0])
	assert.Equal(t, "List«Item»", order.Properties[1].Type)
	assert.Equal(t, []string{views[0].Models[0].ID}, order.Properties[1].Refs)

	m, ok := result.Model(order.ID)
	require.True(t, ok)
	assert.Equal(t, "Order", m.Name)
	_, ok = result.Model("missing")
	assert.False(t, ok)
	assert.Len(t, result.ByGroup()["orders"], 2)
}
