package fastqgen

import (
	"math/rand"
	"time"
)

// Source is the randomness behind every draw the synthesizer makes.
// *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// NewSource returns a seeded source. Seed 0 seeds from the clock.
func NewSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// randomBytes draws n symbols from alphabet with replacement.
func randomBytes(src Source, alphabet string, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = alphabet[src.Intn(len(alphabet))]
	}
	return out
}

func pick(src Source, members []string) string {
	return members[src.Intn(len(members))]
}
