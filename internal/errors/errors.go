package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind classifies engine failures into the closed set callers can
// branch on instead of parsing prose.
type Kind string

const (
	// KindValidation marks malformed input; recoverable by correcting it.
	KindValidation Kind = "validation"
	// KindNotFound marks a missing task/bid/user reference.
	KindNotFound Kind = "not_found"
	// KindInvalidState marks an operation against an entity whose status
	// forbids it; the caller should re-fetch before retrying.
	KindInvalidState Kind = "invalid_state"
	// KindConflict marks a concurrency race that survived the internal
	// retry; safe to retry from scratch.
	KindConflict Kind = "conflict"
	// KindDependency marks a collaborator failure. Logged, never surfaced
	// to callers and never rolls back a committed transition.
	KindDependency Kind = "dependency"
)

// Error is the structured error returned by the lifecycle service.
type Error struct {
	Kind   Kind   `json:"kind"`
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Reason + ": " + e.Err.Error()
	}
	return e.Reason
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(reason string) *Error {
	return &Error{Kind: KindValidation, Reason: reason}
}

func NotFound(reason string) *Error {
	return &Error{Kind: KindNotFound, Reason: reason}
}

func InvalidState(reason string) *Error {
	return &Error{Kind: KindInvalidState, Reason: reason}
}

func Conflict(reason string) *Error {
	return &Error{Kind: KindConflict, Reason: reason}
}

func Dependency(reason string, err error) *Error {
	return &Error{Kind: KindDependency, Reason: reason, Err: err}
}

// Internal wraps an unexpected storage or infrastructure failure.
func Internal(reason string, err error) *Error {
	return &Error{Kind: KindDependency, Reason: reason, Err: err}
}

// KindOf returns the kind of err, or the empty kind when err is not a
// structured engine error.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// StatusCode maps an error to the HTTP status reported to clients.
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidState, KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err as a JSON error response.
func Respond(c *gin.Context, err error) {
	var e *Error
	if !stderrors.As(err, &e) || e.Kind == KindDependency {
		c.JSON(http.StatusInternalServerError, gin.H{
			"kind":   "internal",
			"reason": "internal server error",
		})
		return
	}

	body := gin.H{"kind": e.Kind, "reason": e.Reason}
	if e.Kind == KindConflict {
		body["retryable"] = true
	}
	c.JSON(StatusCode(e), body)
}

// Transport-level helpers for concerns outside the engine taxonomy.

// Unauthorized sends a 401 response.
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	c.JSON(http.StatusUnauthorized, gin.H{"kind": "unauthorized", "reason": message})
}

// Forbidden sends a 403 response.
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	c.JSON(http.StatusForbidden, gin.H{"kind": "forbidden", "reason": message})
}

// BadRequest sends a 400 response for unparseable request bodies.
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	c.JSON(http.StatusBadRequest, gin.H{"kind": KindValidation, "reason": message})
}

// InternalError sends a 500 response.
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	c.JSON(http.StatusInternalServerError, gin.H{"kind": "internal", "reason": message})
}
