package app

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const idChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// IDGenerator produces quiz and embed identifiers.
type IDGenerator struct {
	mu   sync.Mutex
	rand *rand.Rand
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// QuizID returns a fresh quiz identifier, "quiz_" plus 8 random
// alphanumerics. Uniqueness is not checked against existing keys; at this
// collection size the collision odds are accepted as negligible.
func (g *IDGenerator) QuizID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	b := make([]byte, 8)
	for i := range b {
		b[i] = idChars[g.rand.Intn(len(idChars))]
	}
	return "quiz_" + string(b)
}

// EmbedUID returns a per-render instance identifier so the same quiz can be
// embedded several times on one page without DOM id collisions.
func (g *IDGenerator) EmbedUID() string {
	return "yabbyq_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
