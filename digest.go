package uses

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Digest returns a 64-bit content digest of the segment identity. Upstream
// caches can key on it instead of the full identity string.
func (s ComposedSegment) Digest() uint64 {
	return xxhash.Sum64String(s.Identity)
}

// DigestString renders the digest in the "use:<hex>" form expected by cache
// key assembly.
func (s ComposedSegment) DigestString() string {
	return fmt.Sprintf("use:%016x", s.Digest())
}
