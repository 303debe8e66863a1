package uses

import "github.com/goliatone/go-uses/pkg/activity"

// LoaderSpec is one user-declared transformation step. Loader may embed a
// query and fragment ("path?query#fragment") and may carry the reserved
// "builtin:" prefix. Options is nil, a string, a primitive, or a structured
// payload; Ident optionally pins the registry key used for structured
// options.
type LoaderSpec struct {
	Loader  string
	Options any
	Ident   string
}

// JSLoaderUse identifies a composed run of ordinary loaders by the identity
// string the build engine keys its caches on.
type JSLoaderUse struct {
	Identifier string `json:"identifier"`
}

// UseDescriptor is the engine-consumable form of either a composed segment or
// a single builtin step. Exactly one branch is populated.
type UseDescriptor struct {
	JSLoader      *JSLoaderUse `json:"jsLoader,omitempty"`
	BuiltinLoader string       `json:"builtinLoader,omitempty"`
	Options       string       `json:"options,omitempty"`
}

// IsBuiltin reports whether the descriptor carries a builtin step.
func (d UseDescriptor) IsBuiltin() bool {
	return d.BuiltinLoader != ""
}

// ComposedSegment is a non-empty, order-preserving run of specs containing no
// builtin-prefixed loader. Identity is the "$"-joined concatenation of the
// members' resolved identity strings in declaration order; two segments with
// equal identities are the same build input.
type ComposedSegment struct {
	Members  []LoaderSpec
	Identity string
}

// Descriptor converts the segment into its engine-facing descriptor.
func (s ComposedSegment) Descriptor() UseDescriptor {
	return UseDescriptor{JSLoader: &JSLoaderUse{Identifier: s.Identity}}
}

// PathResolver resolves a loader path against a base context directory.
// Resolution failure is fatal for the compilation of that loader.
type PathResolver interface {
	Resolve(context, path string) (string, error)
}

// PathResolverFunc adapts a function to PathResolver.
type PathResolverFunc func(context, path string) (string, error)

// Resolve dispatches to the underlying function.
func (f PathResolverFunc) Resolve(context, path string) (string, error) {
	if f == nil {
		return path, nil
	}
	return f(context, path)
}

// identityResolver stands in when no resolver is wired; paths pass through
// unchanged.
type identityResolver struct{}

func (identityResolver) Resolve(_, path string) (string, error) {
	return path, nil
}

// OptionsRegistry stores structured loader options under opaque idents so the
// build engine can recover the exact payload later. The compiler only ever
// writes; reads belong to the engine.
type OptionsRegistry interface {
	Put(ident string, options any)
}

// Option configures a Compiler.
type Option func(*compilerConfig)

type compilerConfig struct {
	context  string
	resolver PathResolver
	registry OptionsRegistry
	idents   IdentSource
	logger   CompileLogger
	hooks    activity.Hooks
	defaults map[string]map[string]any
}

func applyOptions(opts []Option) compilerConfig {
	cfg := compilerConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithContext sets the base directory loader paths resolve against.
func WithContext(dir string) Option {
	return func(cfg *compilerConfig) {
		cfg.context = dir
	}
}

// WithPathResolver wires the external path-resolution collaborator.
func WithPathResolver(resolver PathResolver) Option {
	return func(cfg *compilerConfig) {
		cfg.resolver = resolver
	}
}

// WithOptionsRegistry wires the shared options reference registry owned by
// the enclosing build context.
func WithOptionsRegistry(registry OptionsRegistry) Option {
	return func(cfg *compilerConfig) {
		cfg.registry = registry
	}
}

// WithIdentSource replaces the generator used for anonymous option idents.
func WithIdentSource(source IdentSource) Option {
	return func(cfg *compilerConfig) {
		cfg.idents = source
	}
}

// WithActivityHooks attaches hooks notified about compilation lifecycle
// events.
func WithActivityHooks(hooks activity.Hooks) Option {
	return func(cfg *compilerConfig) {
		cfg.hooks = hooks
	}
}

// WithDefaultOptions registers default options merged beneath any structured
// options authored for loader. String options keep their literal semantics
// and are never merged.
func WithDefaultOptions(loader string, defaults map[string]any) Option {
	return func(cfg *compilerConfig) {
		if loader == "" || defaults == nil {
			return
		}
		if cfg.defaults == nil {
			cfg.defaults = map[string]map[string]any{}
		}
		cfg.defaults[loader] = defaults
	}
}
