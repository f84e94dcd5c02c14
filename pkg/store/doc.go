// Package store holds the client-side state of a document-records session.
//
// [AuthStore] owns the session token and [RecordsStore] owns the record
// collection. Both are explicit values: construct them once, pass them to
// whatever renders the state, and read them through Snapshot or Subscribe.
// Every mutating method blocks until the API call completes and returns the
// failure it also records in the state, so callers can either inspect the
// returned error or re-render from the snapshot.
//
// Network calls happen outside the store lock. Completions are applied in
// arrival order, so two overlapping writes to the same record end with the
// later response.
package store
