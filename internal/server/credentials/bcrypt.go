// Package credentials hashes and verifies user passwords. Only the opaque
// bcrypt hash (which embeds salt and cost) is ever stored.
package credentials

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/jobtracker/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// Store hashes plaintext secrets and checks them against stored hashes.
type Store interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) (bool, error)
}

// BcryptStore is a Store backed by bcrypt with a fixed cost for new hashes.
type BcryptStore struct {
	cost int
}

// NewBcryptStore returns a store hashing at the given cost. The cost is not
// checked here; an out-of-range cost surfaces as an error from Hash.
func NewBcryptStore(cost int) *BcryptStore {
	return &BcryptStore{cost: cost}
}

// Hash returns a salted bcrypt hash of plaintext. Failures of the primitive
// (invalid cost, password longer than 72 bytes) wrap common.ErrorInternal.
func (s *BcryptStore) Hash(plaintext string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), s.cost)
	if err != nil {
		return "", fmt.Errorf("%w: hash password: %v", common.ErrorInternal, err)
	}
	return string(h), nil
}

// Verify reports whether plaintext matches hash. A mismatch is (false, nil);
// only a malformed hash yields an error.
func (s *BcryptStore) Verify(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("verify password: %w", err)
	}
}
