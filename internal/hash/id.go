// Package hash provides the fast string hash used to pre-bucket entries in
// the session dedup string table before falling back to an exact string
// comparison on collision.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}
