package uses

import (
	"fmt"
	"testing"
)

func BenchmarkCompilePlainChain(b *testing.B) {
	c := New()
	use := []string{"style-loader", "css-loader", "postcss-loader"}
	for i := 0; i < b.N; i++ {
		if _, err := c.Compile(use); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompileMixedChain(b *testing.B) {
	c := New(WithOptionsRegistry(NewMemoryRegistry()))
	use := []any{
		"style-loader",
		LoaderSpec{Loader: SassLoaderName, Options: map[string]any{"sourceMap": true}},
		LoaderSpec{Loader: "css-loader", Options: map[string]any{"modules": true}, Ident: "css"},
	}
	for i := 0; i < b.N; i++ {
		if _, err := c.Compile(use); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSegmentDigest(b *testing.B) {
	segments := make([]ComposedSegment, 64)
	for i := range segments {
		segments[i] = ComposedSegment{Identity: fmt.Sprintf("loader-%02d$css-loader??ident%02d", i, i)}
	}
	for i := 0; i < b.N; i++ {
		for _, segment := range segments {
			_ = segment.Digest()
		}
	}
}
