package constants

import "time"

// DefaultBaseURL is the document-records API host used when nothing else is configured.
const DefaultBaseURL = "https://test.v5.pryaniky.com"

// API paths, relative to the base URL.
const (
	LoginPath  = "/ru/data/v3/testmethods/docs/login"
	FetchPath  = "/ru/data/v3/testmethods/docs/userdocs/get"
	CreatePath = "/ru/data/v3/testmethods/docs/userdocs/create"
	UpdatePath = "/ru/data/v3/testmethods/docs/userdocs/set/"
	DeletePath = "/ru/data/v3/testmethods/docs/userdocs/delete/"
)

const (
	// AuthHeader carries the session token on every authenticated request.
	AuthHeader = "x-auth"

	// SessionTokenKey is the key the session token is persisted under.
	SessionTokenKey = "token"

	// CorrelationIDLength is the length of the client-side id attached to new records.
	CorrelationIDLength = 21
)

// DefaultHTTPTimeout is zero: requests rely on transport defaults and the caller's context.
const DefaultHTTPTimeout time.Duration = 0

var (
	HTTPScheme       = "http"
	HTTPSecureScheme = "https"
)
