package metadata

import (
	"strconv"
	"strings"

	"github.com/halvarsen/evolve/internal/hash"
)

// Fingerprint hashes the canonical textual form of steps: debug/log
// correlation only, never consulted by Serialize or Deserialize, so it
// cannot become a forward-schema-free mechanism (a Non-goal, §1).
func Fingerprint(steps []Step) uint64 {
	var b strings.Builder
	for _, s := range steps {
		b.WriteString(strconv.Itoa(int(s.Kind)))
		b.WriteByte(':')
		b.WriteString(s.Field)
		b.WriteByte(';')
	}

	return hash.ID(b.String())
}
