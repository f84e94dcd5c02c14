// Package client is the HTTP client for the document-records API.
//
// [Client] is stateless apart from its configuration: every call takes the session
// token explicitly, so the same client can serve any number of sessions. The
// token is sent in the x-auth header.
//
// # Operations
//
//   - [Client.Login] exchanges credentials for a token
//   - [Client.FetchRecords] lists all records visible to the token
//   - [Client.CreateRecord], [Client.UpdateRecord] and [Client.DeleteRecord] mutate one record
//
// # Errors
//
// Failures are typed by operation: [*AuthError] for login, [*FetchError] for
// listing and [*WriteError] for mutations. Each one carries the HTTP status (zero
// for transport failures) and wraps its cause, so errors.Is works with context
// errors and errors.As with [*StatusError]. [IsUnauthorized] reports whether the
// server rejected the token.
//
// Nothing is retried. Cancelling the context aborts the request in flight.
//
// # Usage
//
//	c := client.New(constants.DefaultBaseURL)
//
//	token, err := c.Login(ctx, "user", "password")
//	if err != nil {
//		return err
//	}
//
//	records, err := c.FetchRecords(ctx, token)
package client
