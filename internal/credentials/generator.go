package credentials

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// DefaultPassword is applied when an employee is created without a password.
// It is a known weak value; deployments are expected to force a change on
// first login.
const DefaultPassword = "default123"

// Generator produces login usernames. The clock and random source are
// injectable so tests can pin the output; zero values fall back to the
// real clock and a time-seeded source.
type Generator struct {
	Now  func() time.Time
	Rand *rand.Rand

	mu sync.Mutex
}

// NewGenerator returns a generator backed by the system clock.
func NewGenerator() *Generator {
	return &Generator{
		Now:  time.Now,
		Rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Username produces a value of the form user_<unix>_<4 digits>. Uniqueness
// is enforced by the credentials table constraint; the repository retries
// once with a fresh value on conflict.
func (g *Generator) Username() string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	suffix := 1000 + g.intn(9000)
	return fmt.Sprintf("user_%d_%d", now().Unix(), suffix)
}

// intn serializes access to Rand; *rand.Rand is not safe for concurrent use
// and one Generator serves all requests.
func (g *Generator) intn(n int) int {
	if g.Rand == nil {
		return rand.Intn(n)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.Rand.Intn(n)
}
