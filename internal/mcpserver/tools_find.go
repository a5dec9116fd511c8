package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/erraggy/oasmodels/reader"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type findModelInput struct {
	Manifest      manifestInput `json:"manifest"                 jsonschema:"The API manifest to search"`
	Name          string        `json:"name,omitempty"           jsonschema:"Model display name, case-insensitive. Supports * and ? glob patterns"`
	Type          string        `json:"type,omitempty"           jsonschema:"Substring of the model's type signature, e.g. Page<"`
	Group         string        `json:"group,omitempty"          jsonschema:"Only match models accepted in this resource group"`
	GenericNaming string        `json:"generic_naming,omitempty" jsonschema:"Generic argument rendering: guillemets, angle, of, underscore, flattened"`
	Casing        string        `json:"casing,omitempty"         jsonschema:"Name casing: declared, pascal, camel, snake, kebab"`
	Detail        bool          `json:"detail,omitempty"         jsonschema:"Return full models instead of summaries"`
	GroupBy       string        `json:"group_by,omitempty"       jsonschema:"Group results and return counts instead of individual models. Values: group"`
	Offset        int           `json:"offset,omitempty"         jsonschema:"Skip the first N results"`
	Limit         int           `json:"limit,omitempty"          jsonschema:"Maximum number of results to return (default 100, or 25 with detail)"`
}

type modelSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Group         string `json:"group"`
	Type          string `json:"type"`
	PropertyCount int    `json:"property_count"`
}

type findModelOutput struct {
	Total    int            `json:"total"`
	Returned int            `json:"returned"`
	Matches  []modelSummary `json:"matches,omitempty"`
	Models   []groupedModel `json:"models,omitempty"`
	Groups   []groupCount   `json:"groups,omitempty"`
	Summary  string         `json:"summary"`
}

func handleFindModel(ctx context.Context, _ *mcp.CallToolRequest, input findModelInput) (*mcp.CallToolResult, findModelOutput, error) {
	if err := validateGlobPattern(input.Name); err != nil {
		return errResult(err), findModelOutput{}, nil
	}
	if err := validateGroupBy(input.GroupBy, input.Detail, []string{"group"}); err != nil {
		return errResult(err), findModelOutput{}, nil
	}

	result, err := readManifest(ctx, input.Manifest, namingInput{
		GenericNaming: input.GenericNaming,
		Casing:        input.Casing,
	})
	if err != nil {
		return errResult(err), findModelOutput{}, nil
	}

	var matched []groupedModel
	for _, gv := range result.Views() {
		if input.Group != "" && !strings.EqualFold(gv.Group, input.Group) {
			continue
		}
		for _, mv := range gv.Models {
			if !matchModel(mv, input.Name, input.Type) {
				continue
			}
			matched = append(matched, groupedModel{Group: gv.Group, Model: mv})
		}
	}

	output := findModelOutput{Total: len(matched)}

	if input.GroupBy != "" {
		groups := groupAndSort(matched, func(g groupedModel) []string {
			return []string{g.Group}
		})
		output.Groups = paginate(groups, input.Offset, input.Limit)
		output.Returned = len(output.Groups)
		output.Summary = fmt.Sprintf("%s in %s", formatCount(output.Total, "model"), formatCount(len(groups), "group"))
		return nil, output, nil
	}

	if input.Detail {
		output.Models = paginate(matched, input.Offset, detailLimit(input.Limit))
		output.Returned = len(output.Models)
	} else {
		page := paginate(matched, input.Offset, input.Limit)
		output.Matches = makeSlice[modelSummary](len(page))
		for _, g := range page {
			output.Matches = append(output.Matches, modelSummary{
				ID:            g.Model.ID,
				Name:          g.Model.Name,
				Group:         g.Group,
				Type:          g.Model.Type,
				PropertyCount: len(g.Model.Properties),
			})
		}
		output.Returned = len(output.Matches)
	}
	output.Summary = fmt.Sprintf("%s matched, %d returned", formatCount(output.Total, "model"), output.Returned)
	return nil, output, nil
}

// matchModel reports whether mv passes the name glob and type substring filters.
func matchModel(mv reader.ModelView, name, typeSubstr string) bool {
	if !matchGlobName(mv.Name, name) {
		return false
	}
	if typeSubstr != "" && !strings.Contains(strings.ToLower(mv.Type), strings.ToLower(typeSubstr)) {
		return false
	}
	return true
}
