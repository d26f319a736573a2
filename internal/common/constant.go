package common

// AuthorizationHeaderName carries the bearer credential on outbound requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName correlates client log lines with server logs.
const RequestIDHeaderName = "X-Request-ID"

// CredentialKey is the well-known metadata key the session credential is
// persisted under.
const CredentialKey = "token"
