package uses

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"testing"
)

func fixedIdents(idents ...string) IdentSource {
	i := 0
	return IdentSourceFunc(func() string {
		ident := idents[i%len(idents)]
		i++
		return ident
	})
}

func TestParseLoaderRequest(t *testing.T) {
	cases := []struct {
		request  string
		path     string
		query    string
		fragment string
	}{
		{"css-loader", "css-loader", "", ""},
		{"css-loader?modules", "css-loader", "?modules", ""},
		{"css-loader#frag", "css-loader", "", "#frag"},
		{"css-loader?a=1#frag", "css-loader", "?a=1", "#frag"},
		{"css-loader#frag?not-a-query", "css-loader", "", "#frag?not-a-query"},
		{"", "", "", ""},
	}
	for _, tc := range cases {
		parsed := parseLoaderRequest(tc.request)
		if parsed.path != tc.path || parsed.query != tc.query || parsed.fragment != tc.fragment {
			t.Fatalf("parse %q: got %+v", tc.request, parsed)
		}
	}
}

func TestResolveNilOptionsKeepEmbeddedQuery(t *testing.T) {
	c := New()
	resolved, err := c.resolveIdentifier(LoaderSpec{Loader: "css-loader?inline=1#frag"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.identity != "css-loader?inline=1#frag" {
		t.Fatalf("unexpected identity: %q", resolved.identity)
	}
	if resolved.ident != "" {
		t.Fatalf("nil options must not mint an ident, got %q", resolved.ident)
	}
}

func TestResolveStringOptionsOverrideQuery(t *testing.T) {
	registry := NewMemoryRegistry()
	c := New(WithOptionsRegistry(registry))
	resolved, err := c.resolveIdentifier(LoaderSpec{Loader: "css-loader?old", Options: "modules=true"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.identity != "css-loader?modules=true" {
		t.Fatalf("unexpected identity: %q", resolved.identity)
	}
	if registry.Len() != 0 {
		t.Fatalf("string options must not be registered, registry has %d entries", registry.Len())
	}
}

func TestResolveStringOptionsBeatExplicitIdent(t *testing.T) {
	registry := NewMemoryRegistry()
	c := New(WithOptionsRegistry(registry))
	resolved, err := c.resolveIdentifier(LoaderSpec{Loader: "css-loader", Options: "raw", Ident: "pinned"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.identity != "css-loader?raw" {
		t.Fatalf("unexpected identity: %q", resolved.identity)
	}
	if registry.Len() != 0 {
		t.Fatalf("unexpected registry writes: %v", registry.Snapshot())
	}
}

func TestResolveExplicitIdent(t *testing.T) {
	registry := NewMemoryRegistry()
	c := New(WithOptionsRegistry(registry))
	options := map[string]any{"a": 1}
	resolved, err := c.resolveIdentifier(LoaderSpec{Loader: "css-loader", Options: options, Ident: "pinned"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.identity != "css-loader??pinned" {
		t.Fatalf("unexpected identity: %q", resolved.identity)
	}
	got, ok := registry.Get("pinned")
	if !ok || !reflect.DeepEqual(got, options) {
		t.Fatalf("registry entry missing or wrong: %v %v", got, ok)
	}
}

func TestResolveEmbeddedIdent(t *testing.T) {
	registry := NewMemoryRegistry()
	c := New(WithOptionsRegistry(registry))
	options := map[string]any{"ident": "inner", "a": 1}
	resolved, err := c.resolveIdentifier(LoaderSpec{Loader: "css-loader", Options: options})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.identity != "css-loader??inner" {
		t.Fatalf("unexpected identity: %q", resolved.identity)
	}
	if _, ok := registry.Get("inner"); !ok {
		t.Fatalf("embedded ident options not registered: %v", registry.Snapshot())
	}
}

func TestResolveAnonymousStructuredOptions(t *testing.T) {
	registry := NewMemoryRegistry()
	c := New(WithOptionsRegistry(registry), WithIdentSource(fixedIdents("fresh00001")))
	options := map[string]any{"a": 1}
	resolved, err := c.resolveIdentifier(LoaderSpec{Loader: "css-loader", Options: options})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.identity != "css-loader??fresh00001" {
		t.Fatalf("unexpected identity: %q", resolved.identity)
	}
	got, ok := registry.Get("fresh00001")
	if !ok || !reflect.DeepEqual(got, options) {
		t.Fatalf("registry entry missing or wrong: %v %v", got, ok)
	}
}

func TestResolveAnonymousStructuredOptionsDefaultIdentShape(t *testing.T) {
	registry := NewMemoryRegistry()
	c := New(WithOptionsRegistry(registry))
	resolved, err := c.resolveIdentifier(LoaderSpec{Loader: "css-loader", Options: map[string]any{"a": 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	match := regexp.MustCompile(`^css-loader\?\?[A-Za-z0-9]{10}$`)
	if !match.MatchString(resolved.identity) {
		t.Fatalf("unexpected identity shape: %q", resolved.identity)
	}
}

func TestResolvePrimitiveOptions(t *testing.T) {
	registry := NewMemoryRegistry()
	c := New(WithOptionsRegistry(registry))
	cases := []struct {
		options any
		want    string
	}{
		{42, "css-loader?42"},
		{true, "css-loader?true"},
		{1.5, "css-loader?1.5"},
	}
	for _, tc := range cases {
		resolved, err := c.resolveIdentifier(LoaderSpec{Loader: "css-loader", Options: tc.options})
		if err != nil {
			t.Fatalf("unexpected error for %v: %v", tc.options, err)
		}
		if resolved.identity != tc.want {
			t.Fatalf("options %v: want %q, got %q", tc.options, tc.want, resolved.identity)
		}
	}
	if registry.Len() != 0 {
		t.Fatalf("primitives must not be registered: %v", registry.Snapshot())
	}
}

func TestResolvePrimitiveOptionsWithExplicitIdent(t *testing.T) {
	registry := NewMemoryRegistry()
	c := New(WithOptionsRegistry(registry))
	resolved, err := c.resolveIdentifier(LoaderSpec{Loader: "css-loader", Options: 42, Ident: "pinned"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.identity != "css-loader??pinned" {
		t.Fatalf("unexpected identity: %q", resolved.identity)
	}
	if registry.Len() != 0 {
		t.Fatalf("primitive options must not be registered even behind an ident: %v", registry.Snapshot())
	}
}

func TestResolveFragmentSurvivesOptionQueries(t *testing.T) {
	c := New(WithIdentSource(fixedIdents("fresh00001")))
	resolved, err := c.resolveIdentifier(LoaderSpec{Loader: "css-loader?old#frag", Options: map[string]any{"a": 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.identity != "css-loader??fresh00001#frag" {
		t.Fatalf("unexpected identity: %q", resolved.identity)
	}
}

func TestResolveUsesPathResolver(t *testing.T) {
	var gotContext, gotPath string
	resolver := PathResolverFunc(func(context, path string) (string, error) {
		gotContext, gotPath = context, path
		return "/abs/" + path, nil
	})
	c := New(WithContext("/project"), WithPathResolver(resolver))
	resolved, err := c.resolveIdentifier(LoaderSpec{Loader: "css-loader?q", Options: nil})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotContext != "/project" || gotPath != "css-loader" {
		t.Fatalf("resolver received context=%q path=%q", gotContext, gotPath)
	}
	if resolved.identity != "/abs/css-loader?q" {
		t.Fatalf("unexpected identity: %q", resolved.identity)
	}
}

func TestResolveWrapsResolverFailure(t *testing.T) {
	cause := errors.New("module not found")
	resolver := PathResolverFunc(func(context, path string) (string, error) {
		return "", cause
	})
	c := New(WithContext("/project"), WithPathResolver(resolver))
	_, err := c.resolveIdentifier(LoaderSpec{Loader: "missing-loader"})
	if err == nil {
		t.Fatal("expected resolution failure")
	}
	var resolveErr *ResolveError
	if !errors.As(err, &resolveErr) {
		t.Fatalf("expected *ResolveError, got %T: %v", err, err)
	}
	if resolveErr.Loader != "missing-loader" || resolveErr.Context != "/project" {
		t.Fatalf("unexpected error fields: %+v", resolveErr)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause not preserved: %v", err)
	}
	if !strings.Contains(err.Error(), "missing-loader") {
		t.Fatalf("message should name the loader: %v", err)
	}
}

func TestStructuredOptionsClassification(t *testing.T) {
	structured := []any{
		map[string]any{"a": 1},
		[]any{"a"},
		struct{ A int }{A: 1},
		&struct{ A int }{A: 1},
	}
	for _, options := range structured {
		if !structuredOptions(options) {
			t.Fatalf("%T should be structured", options)
		}
	}
	flat := []any{nil, "s", 1, int64(2), uint8(3), 1.5, true, complex(1, 2)}
	for _, options := range flat {
		if structuredOptions(options) {
			t.Fatalf("%T should not be structured", options)
		}
	}
}
