package ledger

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TimeIDGenerator issues identifiers from the wall clock in milliseconds.
// Two calls within the same millisecond still get distinct, increasing ids.
type TimeIDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewTimeIDGenerator() *TimeIDGenerator {
	return &TimeIDGenerator{now: time.Now}
}

func (g *TimeIDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}

// UUIDGenerator issues random version 4 UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SequenceGenerator issues consecutive integers starting after start.
type SequenceGenerator struct {
	mu   sync.Mutex
	next int64
}

func NewSequenceGenerator(start int64) *SequenceGenerator {
	return &SequenceGenerator{next: start}
}

func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return strconv.FormatInt(g.next, 10)
}

// NewIDGenerator returns the generator for a strategy name: "uuid",
// "sequence", or anything else for the wall-clock generator.
func NewIDGenerator(strategy string) IDGenerator {
	switch strategy {
	case "uuid":
		return UUIDGenerator{}
	case "sequence":
		return NewSequenceGenerator(0)
	default:
		return NewTimeIDGenerator()
	}
}
