package ulid

import (
	"github.com/oklog/ulid/v2"
)

// NewULID returns a fresh ULID string; a var so tests can pin IDs.
var NewULID = func() string {
	return ulid.Make().String()
}
