// Package random generates identifiers from a cryptographically secure source.
package random

import (
	"crypto/rand"
	"math/big"

	"github.com/myrjola/biosecure/internal/errors"
)

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Letters returns n random ASCII letters, e.g. for naming throwaway in-memory databases.
func Letters(n uint) (string, error) {
	out := make([]byte, n)
	bound := big.NewInt(int64(len(letters)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, bound)
		if err != nil {
			return "", errors.Wrap(err, "read random index")
		}
		out[i] = letters[idx.Int64()]
	}
	return string(out), nil
}
