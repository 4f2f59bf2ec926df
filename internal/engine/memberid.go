package engine

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Member IDs are drawn from the 6-digit space 100000-999999. Uniqueness is
// enforced by the store; the engine only redraws on collision, up to
// maxIDAttempts before giving up with ErrExhaustedIDSpace.
const (
	memberIDMin   = 100000
	memberIDSpan  = 900000
	maxIDAttempts = 8
)

func randomMemberID() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(memberIDSpan))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+memberIDMin), nil
}
