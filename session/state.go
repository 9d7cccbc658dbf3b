package session

// State is the lifecycle position of the session controller.
type State int

const (
	// SignedOut means no credential pair is held anywhere.
	SignedOut State = iota

	// Determining means a persisted pair was found at startup and its
	// initial refresh is still in flight - the session status is not yet
	// known.
	Determining

	// SignedIn means a complete, decodable credential pair is held and
	// the session projection is populated.
	SignedIn
)

func (s State) String() string {
	switch s {
	case SignedOut:
		return "signed-out"
	case Determining:
		return "determining"
	case SignedIn:
		return "signed-in"
	}
	return "unknown"
}
