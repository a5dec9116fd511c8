// Package options provides shared validation for tool and command inputs.
package options

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasmodels/modelerrors"
)

// Input names one way of supplying a value and whether it was used.
type Input struct {
	Name string
	Set  bool
}

// RequireExactlyOne returns a ConfigError unless exactly one of inputs is set.
func RequireExactlyOne(inputs ...Input) error {
	names := make([]string, 0, len(inputs))
	count := 0
	for _, in := range inputs {
		names = append(names, in.Name)
		if in.Set {
			count++
		}
	}
	if count == 1 {
		return nil
	}
	return &modelerrors.ConfigError{
		Option:  strings.Join(names, "/"),
		Message: fmt.Sprintf("exactly one of %s must be provided", joinAlternatives(names)),
	}
}

// joinAlternatives renders "a", "a or b", or "a, b, or c".
func joinAlternatives(names []string) string {
	switch len(names) {
	case 0:
		return "the inputs"
	case 1:
		return names[0]
	case 2:
		return names[0] + " or " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
	}
}
