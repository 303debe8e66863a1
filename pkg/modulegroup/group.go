// Package modulegroup tracks the modules drawn into one prospective chunk by
// a cache-group configuration. Groups are an intermediate step: the engine
// materializes the winning group into a chunk, removes its modules from the
// rest, and repeats.
package modulegroup

import (
	"slices"
	"sort"
)

// SourceType identifies the kind of source a module contributes
// ("javascript", "css", ...).
type SourceType string

// Module is the minimal build-engine module surface group bookkeeping needs.
type Module interface {
	Identifier() string
	SourceTypes() []SourceType
	Size(SourceType) float64
}

// Group captures a set of modules plus the aggregated sizes per source type
// and the chunks the group would attach to.
type Group struct {
	Name               string
	CacheGroupIndex    int
	CacheGroupPriority float64

	modules map[string]struct{}
	sizes   map[SourceType]float64
	chunks  map[string]struct{}
}

// New constructs an empty group for one cache-group configuration.
func New(name string, cacheGroupIndex int, priority float64) *Group {
	return &Group{
		Name:               name,
		CacheGroupIndex:    cacheGroupIndex,
		CacheGroupPriority: priority,
		modules:            map[string]struct{}{},
		sizes:              map[SourceType]float64{},
		chunks:             map[string]struct{}{},
	}
}

// Add inserts module into the group, accumulating its sizes. Adding the same
// module twice is a no-op.
func (g *Group) Add(module Module) {
	identifier := module.Identifier()
	if _, ok := g.modules[identifier]; ok {
		return
	}
	g.modules[identifier] = struct{}{}
	for _, sourceType := range module.SourceTypes() {
		g.sizes[sourceType] += module.Size(sourceType)
	}
}

// Remove deletes module from the group, subtracting its sizes. Sizes never
// go below zero.
func (g *Group) Remove(module Module) {
	identifier := module.Identifier()
	if _, ok := g.modules[identifier]; !ok {
		return
	}
	delete(g.modules, identifier)
	for _, sourceType := range module.SourceTypes() {
		size := g.sizes[sourceType] - module.Size(sourceType)
		g.sizes[sourceType] = max(size, 0)
	}
}

// Len reports the number of modules in the group.
func (g *Group) Len() int {
	return len(g.modules)
}

// Modules returns the member identifiers sorted lexicographically.
func (g *Group) Modules() []string {
	out := make([]string, 0, len(g.modules))
	for identifier := range g.modules {
		out = append(out, identifier)
	}
	sort.Strings(out)
	return out
}

// Size reports the aggregated size for sourceType.
func (g *Group) Size(sourceType SourceType) float64 {
	return g.sizes[sourceType]
}

// AttachChunk records a chunk the group would land in.
func (g *Group) AttachChunk(key string) {
	g.chunks[key] = struct{}{}
}

// ChunkCount reports how many chunks the group spans.
func (g *Group) ChunkCount() int {
	return len(g.chunks)
}

// Compare orders two groups for selection. Positive means a wins. Stages:
// cache-group priority, chunk count, cache-group declaration order
// (earlier wins), module count, then the sorted module identifier lists as
// the final deterministic tie-breaker.
func Compare(a, b *Group) float64 {
	if diff := a.CacheGroupPriority - b.CacheGroupPriority; diff != 0 {
		return diff
	}
	if diff := float64(a.ChunkCount() - b.ChunkCount()); diff != 0 {
		return diff
	}
	if diff := float64(b.CacheGroupIndex - a.CacheGroupIndex); diff != 0 {
		return diff
	}
	if diff := float64(a.Len() - b.Len()); diff != 0 {
		return diff
	}
	return float64(slices.Compare(a.Modules(), b.Modules()))
}

// Best returns the group Compare ranks highest, or nil for an empty input.
func Best(groups []*Group) *Group {
	var best *Group
	for _, group := range groups {
		if group == nil {
			continue
		}
		if best == nil || Compare(group, best) > 0 {
			best = group
		}
	}
	return best
}
