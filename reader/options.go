package reader

import (
	"github.com/erraggy/oasmodels/model"
	"github.com/erraggy/oasmodels/modelerrors"
	"github.com/erraggy/oasmodels/typename"
)

// Config configures a Reader.
type Config struct {
	// Namer resolves display names. Default: typename.Default().
	Namer typename.Namer
	// Equal decides structural equivalence. Default: model.Equal.
	Equal model.EqualFunc
	// ConflictTemplate renders a disambiguated name when two canonical models
	// claim the same display name. Available variables: {{.Name}}, {{.Index}},
	// {{.Type}}, {{.Package}}, {{.Group}}. Default: "{{.Name}}_{{.Index}}".
	ConflictTemplate string
	// ParallelNaming applies final names to each resource group concurrently.
	ParallelNaming bool
	// IgnorableTypes are marked seen on every root context in addition to
	// each operation's own ignorable types.
	IgnorableTypes []model.ResolvedType
	// Logger receives diagnostic output. Default: NopLogger.
	Logger Logger
}

// DefaultConfig returns the default reader configuration.
func DefaultConfig() Config {
	return Config{
		Namer:            typename.Default(),
		Equal:            model.Equal,
		ConflictTemplate: typename.DefaultConflictTemplate,
		ParallelNaming:   false,
		Logger:           NopLogger{},
	}
}

// Option is a function that configures a Reader.
type Option func(*Config) error

// WithNamer sets the type name resolver.
func WithNamer(n typename.Namer) Option {
	return func(cfg *Config) error {
		if n == nil {
			return &modelerrors.ConfigError{Option: "namer", Message: "namer cannot be nil"}
		}
		cfg.Namer = n
		return nil
	}
}

// WithEquivalence sets the structural equivalence relation.
func WithEquivalence(eq model.EqualFunc) Option {
	return func(cfg *Config) error {
		if eq == nil {
			return &modelerrors.ConfigError{Option: "equivalence", Message: "equivalence function cannot be nil"}
		}
		cfg.Equal = eq
		return nil
	}
}

// WithConflictTemplate sets the template used to disambiguate display names.
func WithConflictTemplate(tmpl string) Option {
	return func(cfg *Config) error {
		if _, err := typename.ParseConflictTemplate(tmpl); err != nil {
			return &modelerrors.ConfigError{Option: "conflict-template", Value: tmpl, Cause: err}
		}
		cfg.ConflictTemplate = tmpl
		return nil
	}
}

// WithParallelNaming enables concurrent application of final names.
func WithParallelNaming(enabled bool) Option {
	return func(cfg *Config) error {
		cfg.ParallelNaming = enabled
		return nil
	}
}

// WithIgnorableTypes adds types that are never expanded into models.
func WithIgnorableTypes(types ...model.ResolvedType) Option {
	return func(cfg *Config) error {
		for _, t := range types {
			if t.IsZero() {
				return &modelerrors.ConfigError{Option: "ignorable-types", Message: "ignorable type cannot be empty"}
			}
		}
		cfg.IgnorableTypes = append(cfg.IgnorableTypes, types...)
		return nil
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l Logger) Option {
	return func(cfg *Config) error {
		if l == nil {
			l = NopLogger{}
		}
		cfg.Logger = l
		return nil
	}
}

// WithConfig replaces the whole configuration. Nil fields fall back to
// their defaults.
func WithConfig(c Config) Option {
	return func(cfg *Config) error {
		defaults := DefaultConfig()
		if c.Namer == nil {
			c.Namer = defaults.Namer
		}
		if c.Equal == nil {
			c.Equal = defaults.Equal
		}
		if c.ConflictTemplate == "" {
			c.ConflictTemplate = defaults.ConflictTemplate
		}
		if c.Logger == nil {
			c.Logger = defaults.Logger
		}
		*cfg = c
		return nil
	}
}

func applyOptions(opts ...Option) (Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}
