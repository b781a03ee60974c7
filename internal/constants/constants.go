package constants

// Context keys
const (
	ContextKeyUserID = "user_id"
)

// Auth
const (
	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Bidding
const (
	// MaxBidMessageLength bounds the optional message attached to a bid.
	MaxBidMessageLength = 350

	// AcceptRetryAttempts is how many times a conflicted acceptance is
	// re-driven through the read-validate-write cycle before giving up.
	AcceptRetryAttempts = 1
)
