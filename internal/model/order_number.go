package model

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// OrderNumberPrefix is the fixed campaign prefix.
const OrderNumberPrefix = "SSK-"

// NewOrderNumber builds a human-readable order number from the tail of
// the current millisecond timestamp plus a small random suffix, e.g.
// "SSK-17034289". Collisions are possible within the same millisecond
// window; the unique index on the order collection is the real
// backstop, and callers must regenerate and retry on a duplicate.
func NewOrderNumber() string {
	return NewOrderNumberAt(time.Now())
}

func NewOrderNumberAt(t time.Time) string {
	millis := fmt.Sprintf("%d", t.UnixMilli())
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}
	return fmt.Sprintf("%s%s%d", OrderNumberPrefix, millis, rand.IntN(100))
}
