// internal/app/system/invitecode/invitecode.go

// Package invitecode produces the shared-secret tokens required to join
// private groups.
//
// Codes are two independent random base-36 segments concatenated. They are
// hard to guess casually but not cryptographically secure, and uniqueness
// across groups is best-effort, not guaranteed.
package invitecode

import (
	"math/rand"
	"strconv"
	"sync"
	"time"
)

// SegmentLen is the length of each base-36 segment.
const SegmentLen = 6

// Generator produces invite codes from a pluggable random source.
// The zero value is not usable; call New or use Generate.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a Generator seeded from the current time.
func New() *Generator {
	return &Generator{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeeded returns a Generator with a fixed seed. For tests.
func NewSeeded(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate returns a fresh invite code: two independent base-36 segments,
// each SegmentLen characters, concatenated.
func (g *Generator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return segment(g.rng) + segment(g.rng)
}

// segment renders one random base-36 segment, left-padded with '0' so short
// draws keep a fixed width.
func segment(rng *rand.Rand) string {
	s := strconv.FormatInt(rng.Int63(), 36)
	if len(s) > SegmentLen {
		s = s[:SegmentLen]
	}
	for len(s) < SegmentLen {
		s = "0" + s
	}
	return s
}

var defaultGen = New()

// Generate returns a code from the package-level generator.
func Generate() string {
	return defaultGen.Generate()
}
