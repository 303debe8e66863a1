package uses

import (
	"strings"
	"time"
)

// partition scans specs left to right and splits the list at every builtin
// loader. Builtins are impermeable separators: each one becomes its own
// standalone step, the ordinary runs between them become composed segments,
// and nothing is ever reordered. A single pass with a run-start index keeps
// the walk iterative regardless of how many builtins the chain carries.
func (c *Compiler) partition(specs []LoaderSpec, trace *Trace) ([]UseDescriptor, error) {
	var out []UseDescriptor
	start := 0
	for i := range specs {
		if !IsBuiltin(specs[i].Loader) {
			continue
		}
		if i > start {
			descriptor, err := c.composeSegment(specs[start:i], trace)
			if err != nil {
				return nil, err
			}
			out = append(out, descriptor)
		}
		descriptor, err := c.materializeBuiltin(specs[i], trace)
		if err != nil {
			return nil, err
		}
		out = append(out, descriptor)
		start = i + 1
	}
	if start < len(specs) {
		descriptor, err := c.composeSegment(specs[start:], trace)
		if err != nil {
			return nil, err
		}
		out = append(out, descriptor)
	}
	return out, nil
}

// composeSegment resolves every member of an ordinary run and joins their
// identities into the segment identity.
func (c *Compiler) composeSegment(members []LoaderSpec, trace *Trace) (UseDescriptor, error) {
	started := time.Now()
	identities := make([]string, 0, len(members))
	idents := make([]string, 0, len(members))
	for _, member := range members {
		resolved, err := c.resolveIdentifier(member)
		if err != nil {
			c.logCompile(CompileLogEvent{
				Stage:    StageSegment,
				Loader:   member.Loader,
				Duration: time.Since(started),
				Err:      err,
			})
			return UseDescriptor{}, err
		}
		identities = append(identities, resolved.identity)
		if resolved.ident != "" {
			idents = append(idents, resolved.ident)
		}
	}

	segment := ComposedSegment{
		Members:  append([]LoaderSpec(nil), members...),
		Identity: strings.Join(identities, "$"),
	}
	c.logCompile(CompileLogEvent{
		Stage:    StageSegment,
		Identity: segment.Identity,
		Loaders:  len(members),
		Duration: time.Since(started),
	})
	c.emitSegmentCompiled(segment, idents)
	if trace != nil {
		trace.Descriptors = append(trace.Descriptors, Provenance{
			Kind:     StageSegment,
			Loaders:  loaderNames(members),
			Identity: segment.Identity,
			Idents:   idents,
		})
	}
	return segment.Descriptor(), nil
}

func loaderNames(specs []LoaderSpec) []string {
	names := make([]string, 0, len(specs))
	for _, spec := range specs {
		names = append(names, spec.Loader)
	}
	return names
}
