package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of a fully-qualified symbol name.
// It backs the root symbol index, giving O(1) lookups of resolved
// schema objects by their dotted path.
func ID(fullName string) uint64 {
	return xxhash.Sum64String(fullName)
}
