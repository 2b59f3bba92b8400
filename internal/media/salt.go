package media

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	// SaltLength is the number of characters in a generated salt.
	SaltLength = 16

	saltAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var saltAlphabetSize = big.NewInt(int64(len(saltAlphabet)))

// NewSalt returns a random object name drawn uniformly from [A-Z0-9].
func NewSalt() (string, error) {
	b := make([]byte, SaltLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, saltAlphabetSize)
		if err != nil {
			return "", fmt.Errorf("generate salt: %w", err)
		}
		b[i] = saltAlphabet[n.Int64()]
	}
	return string(b), nil
}
