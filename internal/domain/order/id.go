// internal/domain/order/id.go
package order

import (
	"fmt"
	"math/rand"
	"time"
)

// IDGenerator mints order ids of the form PREFIX-<unixmilli>-<0..999>.
// Uniqueness is best-effort, not guaranteed: the suffix is not
// cryptographic and two submissions in the same millisecond can collide.
// Acceptable for receipt numbers; not suitable as a security token.
type IDGenerator struct {
	prefix string
	now    func() time.Time
	intN   func(n int) int
}

// NewIDGenerator creates an order id generator with the given prefix
func NewIDGenerator(prefix string) *IDGenerator {
	return &IDGenerator{
		prefix: prefix,
		now:    time.Now,
		intN:   rand.Intn,
	}
}

// Generate returns a new order id
func (g *IDGenerator) Generate() string {
	return fmt.Sprintf("%s-%d-%d", g.prefix, g.now().UnixMilli(), g.intN(1000))
}
