// Package api contains the console's typed wrapper around the check-in
// server's REST endpoints.
//
// The package provides:
//  1. A transport-agnostic contract (the Client interface) covering the user
//     list and its mutations, the notification settings singleton, and the
//     admin password change.
//  2. A concrete HTTP implementation (HTTPClient) speaking JSON against a
//     base URL, tagging every request with an X-Request-ID correlation id.
//
// # Error Handling
//
// Failures are exposed as sentinel errors matchable with errors.Is:
// ErrUnavailable when the transport rejects, ErrRequestFailed on a non-2xx
// status. The one exception is ChangePassword, whose non-2xx responses still
// carry a decodable body with a user-facing message; that message is returned
// in PasswordChangeResult rather than as an error.
//
// The layer is intentionally thin: no caching, no retries, no timeout beyond
// the transport default. A failed call is terminal for the triggering action.
package api
