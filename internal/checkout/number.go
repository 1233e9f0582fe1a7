package checkout

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// GenerateOrderNumber produces a short human-facing receipt number from the
// current Unix time modulo 1000 concatenated with a random 100-999 draw.
// Uniqueness is best effort only; the ledger's unique constraint is the
// backstop, and a collision there fails the commit without clearing the cart.
func GenerateOrderNumber() string {
	timestampSuffix := time.Now().Unix() % 1000
	randomSuffix := rand.IntN(900) + 100
	return fmt.Sprintf("%d%d", timestampSuffix, randomSuffix)
}
