// Package fetch turns a GitHub pull-request URL or a Linear issue key into a
// history.Item by calling the GitHub REST API or the Linear GraphQL API.
// Failures are reported as ErrMissingCredential, ErrInvalidURL,
// ErrMalformedResponse, *APIError or *GraphQLError; nothing is retried.
package fetch
