// Package uses compiles user-authored loader use chains into the normalized,
// ordered descriptors a native build engine executes. It partitions mixed
// ordinary/builtin chains into contiguous runs, derives deterministic cache
// identities for each run, and resolves option payloads to inline literals or
// stable references into a shared options registry.
package uses

import (
	"context"

	"github.com/sourcegraph/conc/pool"

	"github.com/goliatone/go-uses/pkg/activity"
	"github.com/goliatone/go-uses/rule"
)

const defaultMaxWorkers = 8

// Compiler turns use values into ordered UseDescriptor lists. A zero-config
// compiler resolves paths verbatim and generates random anonymous idents;
// production callers wire the build context's resolver and registry.
type Compiler struct {
	cfg compilerConfig
}

// New constructs a Compiler from the provided options.
func New(opts ...Option) *Compiler {
	cfg := applyOptions(opts)
	if cfg.resolver == nil {
		cfg.resolver = identityResolver{}
	}
	if cfg.idents == nil {
		cfg.idents = randomIdentSource{}
	}
	if cfg.logger == nil {
		cfg.logger = noopCompileLogger{}
	}
	return &Compiler{cfg: cfg}
}

// Compile normalizes use and partitions it into engine-consumable
// descriptors, preserving the declaration order of every spec.
func (c *Compiler) Compile(use any) ([]UseDescriptor, error) {
	specs, err := Normalize(use)
	if err != nil {
		return nil, err
	}
	specs = c.applyDefaults(specs)
	return c.partition(specs, nil)
}

// CompileTraced behaves like Compile and additionally records provenance for
// every descriptor produced.
func (c *Compiler) CompileTraced(use any) ([]UseDescriptor, Trace, error) {
	specs, err := Normalize(use)
	if err != nil {
		return nil, Trace{}, err
	}
	specs = c.applyDefaults(specs)
	trace := Trace{}
	descriptors, err := c.partition(specs, &trace)
	if err != nil {
		return nil, Trace{}, err
	}
	return descriptors, trace, nil
}

// CompileRules matches rules against ctx in declaration order and compiles
// the use chains of every rule that accepts the module.
func (c *Compiler) CompileRules(ctx rule.ModuleContext, rules []rule.Rule) ([]UseDescriptor, error) {
	var out []UseDescriptor
	for _, r := range rules {
		matched, err := r.Matches(ctx)
		if err != nil {
			return nil, err
		}
		if !matched {
			continue
		}
		descriptors, err := c.Compile(r.Use)
		if err != nil {
			return nil, err
		}
		out = append(out, descriptors...)
	}
	return out, nil
}

// CompileConcurrent compiles several independent use values with bounded
// concurrency. Results keep positional correspondence with the inputs. The
// wired options registry must tolerate concurrent writers; MemoryRegistry
// does.
func (c *Compiler) CompileConcurrent(values []any, maxWorkers int) ([][]UseDescriptor, error) {
	if maxWorkers <= 0 {
		maxWorkers = defaultMaxWorkers
	}
	results := make([][]UseDescriptor, len(values))
	p := pool.New().WithMaxGoroutines(maxWorkers).WithErrors()
	for i, use := range values {
		p.Go(func() error {
			descriptors, err := c.Compile(use)
			if err != nil {
				return err
			}
			results[i] = descriptors
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// applyDefaults merges registered per-loader defaults beneath each spec's
// options. String options keep their literal passthrough semantics; typed
// payloads and primitives win outright over defaults.
func (c *Compiler) applyDefaults(specs []LoaderSpec) []LoaderSpec {
	if len(c.cfg.defaults) == 0 {
		return specs
	}
	out := append([]LoaderSpec(nil), specs...)
	for i := range out {
		defaults, ok := c.cfg.defaults[parseLoaderRequest(out[i].Loader).path]
		if !ok {
			continue
		}
		switch options := out[i].Options.(type) {
		case nil:
			out[i].Options = MergeOptionLayers(defaults)
		case map[string]any:
			out[i].Options = MergeOptionLayers(options, defaults)
		}
	}
	return out
}

func (c *Compiler) logCompile(event CompileLogEvent) {
	c.cfg.logger.LogCompile(event)
}

func (c *Compiler) emitSegmentCompiled(segment ComposedSegment, idents []string) {
	if !c.cfg.hooks.Enabled() {
		return
	}
	_ = c.cfg.hooks.Notify(context.Background(), activity.BuildSegmentCompiledEvent(activity.UseEventInput{
		Identifier: segment.Identity,
		Loaders:    loaderNames(segment.Members),
		Idents:     idents,
	}))
}

func (c *Compiler) emitBuiltinCompiled(loader, options string) {
	if !c.cfg.hooks.Enabled() {
		return
	}
	_ = c.cfg.hooks.Notify(context.Background(), activity.BuildBuiltinCompiledEvent(activity.UseEventInput{
		Loaders: []string{loader},
		Options: options,
	}))
}

func (c *Compiler) emitOptionsRegistered(ident string) {
	if !c.cfg.hooks.Enabled() {
		return
	}
	_ = c.cfg.hooks.Notify(context.Background(), activity.BuildOptionsRegisteredEvent(activity.UseEventInput{
		Idents: []string{ident},
	}))
}
