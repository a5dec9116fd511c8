package reader

import (
	"context"
	"fmt"
	"text/template"

	"github.com/erraggy/oasmodels/model"
	"github.com/erraggy/oasmodels/modelerrors"
	"github.com/erraggy/oasmodels/typename"
)

// ModelSource builds models for type contexts.
type ModelSource interface {
	// ModelFor returns the model of tc's own type, or nil when the type
	// produces no documented model.
	ModelFor(tc *model.TypeContext) (*model.Model, error)
	// Dependencies returns every model transitively reachable from tc's
	// type, keyed by model id. Ignored types are never included.
	Dependencies(tc *model.TypeContext) (map[string]*model.Model, error)
}

// ContextProvider yields the root type contexts of an operation: typically
// one for the response type and one per body parameter.
type ContextProvider interface {
	ModelContexts(op *model.Operation) ([]*model.TypeContext, error)
}

// GroupScan is the ordered list of operations of one resource group.
type GroupScan struct {
	Group      model.ResourceGroup
	Operations []*model.Operation
}

// Scan is the ordered list of resource groups to read.
type Scan struct {
	Groups []GroupScan
}

// Add appends op to the scan entry for op.Group, creating it on first use.
func (s *Scan) Add(op *model.Operation) {
	for i := range s.Groups {
		if s.Groups[i].Group.Name == op.Group.Name {
			s.Groups[i].Operations = append(s.Groups[i].Operations, op)
			return
		}
	}
	s.Groups = append(s.Groups, GroupScan{Group: op.Group, Operations: []*model.Operation{op}})
}

// Reader reads deduplicated, consistently named models from a scan.
//
// A Reader holds only configuration; every call to Read owns its own index
// and registry, so a Reader may be reused for successive reads.
type Reader struct {
	source   ModelSource
	provider ContextProvider
	config   Config
	conflict *template.Template
}

// New creates a Reader.
func New(source ModelSource, provider ContextProvider, opts ...Option) (*Reader, error) {
	if source == nil {
		return nil, &modelerrors.ConfigError{Option: "source", Message: "model source cannot be nil"}
	}
	if provider == nil {
		return nil, &modelerrors.ConfigError{Option: "provider", Message: "context provider cannot be nil"}
	}
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	conflict, err := typename.ParseConflictTemplate(cfg.ConflictTemplate)
	if err != nil {
		return nil, &modelerrors.ConfigError{Option: "conflict-template", Value: cfg.ConflictTemplate, Cause: err}
	}
	return &Reader{
		source:   source,
		provider: provider,
		config:   cfg,
		conflict: conflict,
	}, nil
}

// Config returns the effective configuration.
func (r *Reader) Config() Config {
	return r.config
}

// Read processes every group, operation and root context of scan in order.
// Each root context yields a branch that is merged into one index shared by
// all groups, so a model already accepted in an earlier group is never
// emitted again. Names are finalized after the last branch.
func (r *Reader) Read(ctx context.Context, scan *Scan) (*ReadResult, error) {
	if scan == nil {
		return nil, &modelerrors.ConfigError{Option: "scan", Message: "scan cannot be nil"}
	}
	log := r.config.Logger

	registry := NewRegistry()
	index := NewIndex()
	collector := &Collector{Source: r.source, Registry: registry, Logger: log}
	merger := &Merger{
		Index:    index,
		Registry: registry,
		Equal:    r.config.Equal,
		Namer:    r.config.Namer,
		Logger:   log,
	}

	result := &ReadResult{}
	for _, gs := range scan.Groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		glog := log.With("group", gs.Group.Name)
		gm := &GroupModels{Group: gs.Group}
		result.Groups = append(result.Groups, gm)
		result.Stats.Groups++

		for _, op := range gs.Operations {
			if op == nil {
				continue
			}
			if op.Group.Name == "" {
				scoped := *op
				scoped.Group = gs.Group
				op = &scoped
			}
			result.Stats.Operations++
			accepted, err := r.readOperation(op, collector, merger, result, glog.With("operation", op.ID))
			if err != nil {
				return nil, err
			}
			gm.Models = append(gm.Models, accepted...)
		}
		glog.Debug("group read", "models", len(gm.Models))
	}

	finalizer := &Finalizer{
		Registry:         registry,
		Namer:            r.config.Namer,
		ConflictTemplate: r.conflict,
		Parallel:         r.config.ParallelNaming,
		Logger:           log,
	}
	warnings, err := finalizer.Finalize(ctx, result.Groups)
	result.Warnings = append(result.Warnings, warnings...)
	if err != nil {
		return nil, fmt.Errorf("reader: finalizing names: %w", err)
	}
	result.finalizer = finalizer
	result.Stats.Contexts = registry.Len()
	result.Stats.Canonical = index.Len()

	log.Info("read complete",
		"groups", result.Stats.Groups,
		"operations", result.Stats.Operations,
		"canonical", result.Stats.Canonical,
		"deduplicated", result.Stats.Deduplicated)
	return result, nil
}

func (r *Reader) readOperation(op *model.Operation, collector *Collector, merger *Merger, result *ReadResult, log Logger) ([]*model.Model, error) {
	roots, err := r.provider.ModelContexts(op)
	if err != nil {
		return nil, &modelerrors.SourceError{Collaborator: "context provider", Type: op.ID, Cause: err}
	}

	ignorable := make([]model.ResolvedType, 0, len(op.Ignorable)+len(r.config.IgnorableTypes))
	ignorable = append(ignorable, op.Ignorable...)
	ignorable = append(ignorable, r.config.IgnorableTypes...)

	var accepted []*model.Model
	collector.Logger = log
	merger.Logger = log
	for _, root := range roots {
		branch, err := collector.Collect(root, ignorable)
		if err != nil {
			return nil, fmt.Errorf("reader: collecting %s: %w", root.Type.Signature(), err)
		}
		result.Warnings = append(result.Warnings, branch.Warnings...)
		result.Stats.Branches++
		result.Stats.Collected += branch.Len()

		merged, err := merger.Merge(branch)
		if err != nil {
			return nil, fmt.Errorf("reader: merging %s: %w", root.Type.Signature(), err)
		}
		result.Warnings = append(result.Warnings, merged.Warnings...)
		result.Stats.Deduplicated += len(merged.Deduplicated)
		if merged.Passes > result.Stats.MaxPasses {
			result.Stats.MaxPasses = merged.Passes
		}
		accepted = append(accepted, merged.Accepted...)
	}
	return accepted, nil
}
