package match

import "errors"

// Sentinel errors shared by the repository and controllers. Controllers
// map them onto HTTP status codes; nothing in this package touches HTTP.
var (
	// Not found
	ErrMatchNotFound  = errors.New("match not found")
	ErrPlayerNotFound = errors.New("player not found")

	// Validation (bad input, nothing written)
	ErrDuplicatePlayer = errors.New("the same player cannot appear twice in one round")
	ErrPlayerCount     = errors.New("player count must be an even number of at least 4")
	ErrRuleCount       = errors.New("exactly one score rule per rank is required")

	// Conflicts (match in the wrong state)
	ErrMatchFinished = errors.New("match is already finished")
)
