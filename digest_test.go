package uses

import (
	"strings"
	"testing"
)

func TestSegmentDigestDeterministic(t *testing.T) {
	a := ComposedSegment{Identity: "style-loader$css-loader??abc"}
	b := ComposedSegment{Identity: "style-loader$css-loader??abc"}
	if a.Digest() != b.Digest() {
		t.Fatal("equal identities must digest equally")
	}
	c := ComposedSegment{Identity: "style-loader$css-loader??xyz"}
	if a.Digest() == c.Digest() {
		t.Fatal("different identities should not collide in this test vector")
	}
}

func TestSegmentDigestString(t *testing.T) {
	segment := ComposedSegment{Identity: "style-loader"}
	digest := segment.DigestString()
	if !strings.HasPrefix(digest, "use:") {
		t.Fatalf("want use: prefix, got %q", digest)
	}
	if len(digest) != len("use:")+16 {
		t.Fatalf("want 16 hex digits, got %q", digest)
	}
}
