package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/erraggy/oasmodels/internal/fileutil"
	"github.com/erraggy/oasmodels/internal/pathutil"
	"github.com/erraggy/oasmodels/reader"
	"github.com/erraggy/oasmodels/source"
	"github.com/erraggy/oasmodels/typename"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.yaml.in/yaml/v4"
)

// namingInput carries the naming knobs shared by read_models and find_model.
type namingInput struct {
	GenericNaming    string
	Casing           string
	Qualified        bool
	ConflictTemplate string
	ParallelNaming   bool
}

// options builds reader options from the input, falling back to the
// server-wide defaults for unset fields.
func (n namingInput) options() ([]reader.Option, error) {
	nc := typename.DefaultConfig()
	generic := n.GenericNaming
	if generic == "" {
		generic = cfg.GenericNaming
	}
	if generic != "" {
		st, err := typename.ParseGenericNamingStrategy(generic)
		if err != nil {
			return nil, err
		}
		nc.Generic = st
	}
	casing := n.Casing
	if casing == "" {
		casing = cfg.Casing
	}
	if casing != "" {
		c, err := typename.ParseCasing(casing)
		if err != nil {
			return nil, err
		}
		nc.Casing = c
	}
	nc.Qualified = n.Qualified

	opts := []reader.Option{
		reader.WithNamer(typename.New(nc)),
		reader.WithParallelNaming(n.ParallelNaming || cfg.ParallelNaming),
	}
	if n.ConflictTemplate != "" {
		opts = append(opts, reader.WithConflictTemplate(n.ConflictTemplate))
	}
	return opts, nil
}

// readManifest resolves the manifest and runs a read pass over it.
func readManifest(ctx context.Context, m manifestInput, naming namingInput) (*reader.ReadResult, error) {
	loaded, err := m.resolve()
	if err != nil {
		return nil, err
	}
	opts, err := naming.options()
	if err != nil {
		return nil, err
	}
	opts = append(opts, reader.WithIgnorableTypes(loaded.ignorable...))
	r, err := reader.New(loaded.source, source.NewProvider(loaded.source), opts...)
	if err != nil {
		return nil, err
	}
	return r.Read(ctx, loaded.scan)
}

type readModelsInput struct {
	Manifest         manifestInput `json:"manifest"                    jsonschema:"The API manifest to read"`
	Group            string        `json:"group,omitempty"             jsonschema:"Only return models accepted in this resource group"`
	GenericNaming    string        `json:"generic_naming,omitempty"    jsonschema:"Generic argument rendering: guillemets, angle, of, underscore, flattened"`
	Casing           string        `json:"casing,omitempty"            jsonschema:"Name casing: declared, pascal, camel, snake, kebab"`
	Qualified        bool          `json:"qualified,omitempty"         jsonschema:"Prefix model names with their package"`
	ConflictTemplate string        `json:"conflict_template,omitempty" jsonschema:"Go text/template used to rename conflicting names"`
	ParallelNaming   bool          `json:"parallel_naming,omitempty"   jsonschema:"Finalize names per group concurrently"`
	Output           string        `json:"output,omitempty"            jsonschema:"Write the full result to this file path"`
	Format           string        `json:"format,omitempty"            jsonschema:"Output file format: json (default) or yaml"`
	Offset           int           `json:"offset,omitempty"            jsonschema:"Skip the first N models"`
	Limit            int           `json:"limit,omitempty"             jsonschema:"Maximum number of models to return (default 25)"`
}

func (in readModelsInput) naming() namingInput {
	return namingInput{
		GenericNaming:    in.GenericNaming,
		Casing:           in.Casing,
		Qualified:        in.Qualified,
		ConflictTemplate: in.ConflictTemplate,
		ParallelNaming:   in.ParallelNaming,
	}
}

// groupedModel pairs a canonical model with the group that accepted it.
type groupedModel struct {
	Group string           `json:"group"`
	Model reader.ModelView `json:"model"`
}

type readModelsOutput struct {
	GroupCount   int            `json:"group_count"`
	ModelCount   int            `json:"model_count"`
	Deduplicated int            `json:"deduplicated"`
	Returned     int            `json:"returned"`
	Models       []groupedModel `json:"models,omitempty"`
	Warnings     []string       `json:"warnings,omitempty"`
	WrittenTo    string         `json:"written_to,omitempty"`
	Summary      string         `json:"summary"`
}

func handleReadModels(ctx context.Context, _ *mcp.CallToolRequest, input readModelsInput) (*mcp.CallToolResult, readModelsOutput, error) {
	format := strings.ToLower(input.Format)
	if format != "" && format != "json" && format != "yaml" {
		return errResult(fmt.Errorf("invalid format %q; valid values: json, yaml", input.Format)), readModelsOutput{}, nil
	}

	result, err := readManifest(ctx, input.Manifest, input.naming())
	if err != nil {
		return errResult(err), readModelsOutput{}, nil
	}

	views := result.Views()
	if input.Group != "" {
		views = filterGroupViews(views, input.Group)
		if len(views) == 0 {
			return errResult(fmt.Errorf("group %q not found", input.Group)), readModelsOutput{}, nil
		}
	}

	var all []groupedModel
	for _, gv := range views {
		for _, mv := range gv.Models {
			all = append(all, groupedModel{Group: gv.Group, Model: mv})
		}
	}

	output := readModelsOutput{
		GroupCount:   len(views),
		ModelCount:   len(all),
		Deduplicated: result.Stats.Deduplicated,
		Warnings:     result.Warnings.Strings(),
	}

	if input.Output != "" {
		cleaned, err := pathutil.SanitizeOutputPath(input.Output)
		if err != nil {
			return errResult(err), readModelsOutput{}, nil
		}
		data, err := marshalViews(views, format)
		if err != nil {
			return errResult(err), readModelsOutput{}, nil
		}
		if err := os.WriteFile(cleaned, data, fileutil.OwnerReadWrite); err != nil {
			return errResult(fmt.Errorf("failed to write output file: %w", err)), readModelsOutput{}, nil
		}
		output.WrittenTo = cleaned
	} else {
		output.Models = paginate(all, input.Offset, detailLimit(input.Limit))
	}
	output.Returned = len(output.Models)

	output.Summary = fmt.Sprintf("%s across %s, %d deduplicated",
		formatCount(output.ModelCount, "model"), formatCount(output.GroupCount, "group"), output.Deduplicated)
	if output.WrittenTo != "" {
		output.Summary += "; written to " + output.WrittenTo
	}
	return nil, output, nil
}

// filterGroupViews returns the views whose group matches name, case-insensitively.
func filterGroupViews(views []reader.GroupView, name string) []reader.GroupView {
	var filtered []reader.GroupView
	for _, gv := range views {
		if strings.EqualFold(gv.Group, name) {
			filtered = append(filtered, gv)
		}
	}
	return filtered
}

func marshalViews(views []reader.GroupView, format string) ([]byte, error) {
	if format == "yaml" {
		return yaml.Marshal(views)
	}
	data, err := json.MarshalIndent(views, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
