package reader

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasmodels/internal/severity"
)

// WarningCategory identifies the type of warning.
type WarningCategory string

const (
	// WarnMissingPrimaryModel indicates the model source produced no primary
	// model for a root context; its dependencies were still merged.
	WarnMissingPrimaryModel WarningCategory = "missing_primary_model"
	// WarnModelDeduplicated indicates a model was folded into an existing
	// canonical model.
	WarnModelDeduplicated WarningCategory = "model_deduplicated"
	// WarnNameDisambiguated indicates a canonical model was renamed because
	// another canonical model already claimed its display name.
	WarnNameDisambiguated WarningCategory = "name_disambiguated"
)

// Warning is a non-fatal event recorded during a read pass.
type Warning struct {
	// Category identifies the type of warning.
	Category WarningCategory
	// Severity indicates warning severity.
	Severity severity.Severity
	// Group is the resource group being processed.
	Group string
	// Operation is the operation being processed, if any.
	Operation string
	// ModelID is the affected model, if any.
	ModelID string
	// Message is a human-readable description.
	Message string
	// Context provides additional details.
	Context map[string]any
}

// String returns the warning message.
func (w *Warning) String() string {
	return w.Message
}

// NewMissingPrimaryModelWarning creates a warning for a root context whose
// type produced no model.
func NewMissingPrimaryModelWarning(group, operation, typeSig string) *Warning {
	return &Warning{
		Category:  WarnMissingPrimaryModel,
		Severity:  severity.SeverityInfo,
		Group:     group,
		Operation: operation,
		Message:   fmt.Sprintf("no primary model for %s in operation '%s'", typeSig, operation),
		Context: map[string]any{
			"type": typeSig,
		},
	}
}

// NewModelDeduplicatedWarning creates a warning when a model is folded into
// a canonical model.
func NewModelDeduplicatedWarning(group, operation, loserID, winnerID, typeSig string) *Warning {
	return &Warning{
		Category:  WarnModelDeduplicated,
		Severity:  severity.SeverityInfo,
		Group:     group,
		Operation: operation,
		ModelID:   loserID,
		Message:   fmt.Sprintf("model %s (%s) deduplicated into canonical model %s", loserID, typeSig, winnerID),
		Context: map[string]any{
			"canonical_id": winnerID,
			"type":         typeSig,
		},
	}
}

// NewNameDisambiguatedWarning creates a warning when a display name had to
// be disambiguated.
func NewNameDisambiguatedWarning(group, modelID, baseName, finalName, typeSig string) *Warning {
	return &Warning{
		Category: WarnNameDisambiguated,
		Severity: severity.SeverityWarning,
		Group:    group,
		ModelID:  modelID,
		Message:  fmt.Sprintf("model name '%s' already taken; %s named '%s'", baseName, typeSig, finalName),
		Context: map[string]any{
			"base_name":  baseName,
			"final_name": finalName,
			"type":       typeSig,
		},
	}
}

// Warnings is a collection of Warning.
type Warnings []*Warning

// Strings returns the warning messages.
func (ws Warnings) Strings() []string {
	result := make([]string, len(ws))
	for i, w := range ws {
		if w == nil {
			continue
		}
		result[i] = w.String()
	}
	return result
}

// ByCategory filters warnings by category.
func (ws Warnings) ByCategory(cat WarningCategory) Warnings {
	var result Warnings
	for _, w := range ws {
		if w.Category == cat {
			result = append(result, w)
		}
	}
	return result
}

// BySeverity filters warnings by severity.
func (ws Warnings) BySeverity(sev severity.Severity) Warnings {
	var result Warnings
	for _, w := range ws {
		if w.Severity == sev {
			result = append(result, w)
		}
	}
	return result
}

// Summary returns a formatted summary of warnings.
func (ws Warnings) Summary() string {
	if len(ws) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d warning(s):\n", len(ws))
	for _, w := range ws {
		sb.WriteString("  - ")
		sb.WriteString(w.String())
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
