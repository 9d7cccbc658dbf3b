// Package credstore persists the single credential pair the client holds
// between runs. It is a blind slot: stores never look inside the tokens,
// they only enforce that the slot holds a complete pair or nothing at all.
package credstore

import (
	"errors"

	"github.com/athenaeum-hq/athenaeum-go/token"
)

var (
	// ErrIncompletePair is returned by Save when only one half of the
	// credential pair is present. Durable storage must never hold an
	// access token without its refresh token or vice versa.
	ErrIncompletePair = errors.New("credential pair must have both access and refresh tokens")

	// ErrCorruptStore indicates the persisted record could not be read
	// back as a credential pair. Callers should treat this as corrupted
	// local state and clear it.
	ErrCorruptStore = errors.New("stored credentials are unreadable")
)

// Store is the durable slot for the current credential pair.
type Store interface {
	// Save persists the pair, overwriting any prior value wholesale.
	// A partial pair is rejected with ErrIncompletePair.
	Save(pair token.Pair) error

	// Load returns the current pair. ok is false when the slot is empty.
	Load() (pair token.Pair, ok bool, err error)

	// Clear empties the slot. Clearing an already empty slot is not an
	// error.
	Clear() error
}
