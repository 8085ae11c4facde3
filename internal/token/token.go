package token

import (
	"crypto/rand"
	"math/big"
)

// URL-safe alphabet without look-alike characters (0/O, 1/I/l).
const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnpqrstuvwxyz23456789"

// New returns a short opaque token of n characters drawn uniformly from a
// URL-safe alphabet. Tokens are used for booking ids and stored-file names;
// uniqueness is not checked here, callers rely on collision-resistant length
// plus the store's unique-key constraint.
func New(n int) string {
	if n <= 0 {
		return ""
	}
	max := big.NewInt(int64(len(alphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failing means the process has bigger problems;
			// fall back to a fixed character rather than panic mid-request.
			b[i] = alphabet[0]
			continue
		}
		b[i] = alphabet[idx.Int64()]
	}
	return string(b)
}
