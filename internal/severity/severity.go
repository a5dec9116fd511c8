// Package severity provides severity levels for warnings recorded while
// reading models.
//
// The severity levels are ordered from least to most severe:
// Info < Warning < Error
package severity

import "fmt"

// Severity indicates how actionable a recorded warning is.
type Severity int

const (
	// SeverityInfo indicates informational messages about processing choices,
	// such as a model folded into its canonical copy.
	SeverityInfo Severity = iota

	// SeverityWarning indicates a result the caller may want to review,
	// such as a disambiguated model name.
	SeverityWarning

	// SeverityError indicates a problem that did not abort the read but
	// makes part of the output unreliable.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText renders the severity by name in JSON and YAML output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Parse returns the severity named s.
func Parse(s string) (Severity, error) {
	switch s {
	case "info":
		return SeverityInfo, nil
	case "warning":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	default:
		return 0, fmt.Errorf("unknown severity %q", s)
	}
}
