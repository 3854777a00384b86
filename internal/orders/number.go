package orders

import (
	"fmt"
	"math/rand"
	"time"
)

// NewNumber derives the human-readable order number from the creation
// timestamp: 13 millisecond digits plus a 4-digit random suffix for checkouts
// landing in the same millisecond. Fixed width keeps lexical and
// chronological ordering aligned; the unique index on orders.number is the
// final uniqueness backstop.
func NewNumber(at time.Time) string {
	return fmt.Sprintf("%013d%04d", at.UnixMilli(), rand.Intn(10000))
}
