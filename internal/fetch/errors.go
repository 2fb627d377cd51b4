package fetch

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential is returned before any network call when the
	// provider token is empty.
	ErrMissingCredential = errors.New("credential not found")
	// ErrMalformedResponse is returned when a successful response lacks
	// required fields.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrInvalidURL is returned for pull-request URLs without owner, repo and
	// number segments.
	ErrInvalidURL = errors.New("invalid pull request URL")
)

// APIError is a transport-level failure: a non-2xx response.
type APIError struct {
	Provider   string
	StatusCode int
	Reason     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error: %d %s", e.Provider, e.StatusCode, e.Reason)
}

// GraphQLError is an explicit error payload in an otherwise successful
// GraphQL response.
type GraphQLError struct {
	Message string
}

func (e *GraphQLError) Error() string {
	return "Linear GraphQL error: " + e.Message
}
