package reader

import (
	"context"
	"fmt"
	"text/template"

	"github.com/erraggy/oasmodels/model"
	"github.com/erraggy/oasmodels/modelerrors"
	"github.com/erraggy/oasmodels/typename"
	"golang.org/x/sync/errgroup"
)

// Finalizer assigns final display names once every branch has been merged.
//
// Names are decided per representative context, so a model and every model
// deduplicated into it share one name. Naming runs sequentially in group and
// model order, which keeps conflict suffixes deterministic; applying the
// names to references may then fan out per group.
type Finalizer struct {
	Registry         *Registry
	Namer            typename.Namer
	ConflictTemplate *template.Template
	Parallel         bool
	Logger           Logger

	names map[*model.TypeContext]string
}

// Finalize names every canonical model in groups and rewrites all model
// references to carry those names. Every reference must point at a model
// present in groups; anything else is a ConsistencyError.
func (f *Finalizer) Finalize(ctx context.Context, groups []*GroupModels) (Warnings, error) {
	warnings, err := f.assignNames(groups)
	if err != nil {
		return warnings, err
	}

	outputIDs := make(map[string]bool)
	for _, g := range groups {
		for _, m := range g.Models {
			outputIDs[m.ID] = true
		}
	}

	if !f.Parallel {
		for _, g := range groups {
			if err := ctx.Err(); err != nil {
				return warnings, err
			}
			if err := f.apply(g, outputIDs); err != nil {
				return warnings, err
			}
		}
		return warnings, nil
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for _, g := range groups {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			return f.apply(g, outputIDs)
		})
	}
	return warnings, eg.Wait()
}

// NameFor returns the final display name of a registered id. Ids that were
// deduplicated resolve to the name of their canonical model.
func (f *Finalizer) NameFor(id string) (string, bool) {
	rep, ok := f.Registry.Resolve(id)
	if !ok {
		return "", false
	}
	name, ok := f.names[rep]
	return name, ok
}

func (f *Finalizer) assignNames(groups []*GroupModels) (Warnings, error) {
	log := f.Logger
	if log == nil {
		log = NopLogger{}
	}
	tmpl := f.ConflictTemplate
	if tmpl == nil {
		var err error
		if tmpl, err = typename.ParseConflictTemplate(""); err != nil {
			return nil, err
		}
	}

	var warnings Warnings
	f.names = make(map[*model.TypeContext]string)
	claimed := make(map[string]*model.TypeContext)
	conflicts := make(map[string]int)

	for _, g := range groups {
		for _, m := range g.Models {
			rep, ok := f.Registry.Resolve(m.ID)
			if !ok {
				return warnings, &modelerrors.ConsistencyError{
					Group:   g.Group.Name,
					ModelID: m.ID,
					Message: "model has no registered type context",
				}
			}
			if _, named := f.names[rep]; named {
				continue
			}

			base := f.Namer.TypeName(rep)
			if base == "" {
				base = m.Type.Name
			}
			name := base
			if owner, taken := claimed[base]; taken && owner != rep {
				var err error
				name, err = f.disambiguate(tmpl, claimed, conflicts, base, m, g.Group.Name)
				if err != nil {
					return warnings, err
				}
				warnings = append(warnings, NewNameDisambiguatedWarning(g.Group.Name, m.ID, base, name, m.Type.Signature()))
				log.Debug("disambiguated model name", "id", m.ID, "base", base, "name", name)
			}
			claimed[name] = rep
			f.names[rep] = name
		}
	}
	return warnings, nil
}

func (f *Finalizer) disambiguate(tmpl *template.Template, claimed map[string]*model.TypeContext, conflicts map[string]int, base string, m *model.Model, group string) (string, error) {
	// Every attempt bumps the index; a template that ignores it cannot
	// produce more than one distinct name per base.
	for attempt := 0; attempt <= len(claimed); attempt++ {
		conflicts[base]++
		name, err := typename.ExecuteConflictTemplate(tmpl, typename.ConflictContext{
			Name:    base,
			Index:   conflicts[base],
			Type:    m.Type.Signature(),
			Package: m.Type.Package,
			Group:   group,
		})
		if err != nil {
			return "", &modelerrors.ConfigError{Option: "conflict-template", Cause: err}
		}
		if _, taken := claimed[name]; !taken {
			return name, nil
		}
	}
	return "", &modelerrors.ConfigError{
		Option:  "conflict-template",
		Message: fmt.Sprintf("no unique name found for %s", m.Type.Signature()),
	}
}

func (f *Finalizer) apply(g *GroupModels, outputIDs map[string]bool) error {
	for _, m := range g.Models {
		for _, p := range m.Properties() {
			if err := f.rename(g, m, p.Name, p.Ref, outputIDs); err != nil {
				return err
			}
		}
		for _, sub := range m.SubTypes {
			if err := f.rename(g, m, "", sub, outputIDs); err != nil {
				return err
			}
		}
		name, ok := f.NameFor(m.ID)
		if !ok {
			return &modelerrors.ConsistencyError{Group: g.Group.Name, ModelID: m.ID, Message: "model was never named"}
		}
		m.Name = name
	}
	return nil
}

func (f *Finalizer) rename(g *GroupModels, m *model.Model, property string, ref *model.Ref, outputIDs map[string]bool) error {
	var err error
	ref.Walk(func(r *model.Ref) {
		if err != nil || r.ModelID == "" {
			return
		}
		if !outputIDs[r.ModelID] {
			err = &modelerrors.ConsistencyError{
				Group:    g.Group.Name,
				ModelID:  m.ID,
				Property: property,
				RefID:    r.ModelID,
				Message:  "referenced model is not in the output",
			}
			return
		}
		name, ok := f.NameFor(r.ModelID)
		if !ok {
			err = &modelerrors.ConsistencyError{
				Group:    g.Group.Name,
				ModelID:  m.ID,
				Property: property,
				RefID:    r.ModelID,
				Message:  "referenced model has no registered type context",
			}
			return
		}
		r.Type = name
	})
	return err
}
