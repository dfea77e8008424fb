package common

const (
	// AuthorizationHeaderName carries the bearer token on mutating requests.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme is the only accepted authorization scheme (compared case-insensitively).
	BearerScheme = "bearer"

	// RequestIDHeaderName echoes the per-request correlation id.
	RequestIDHeaderName = "X-Request-ID"
)
