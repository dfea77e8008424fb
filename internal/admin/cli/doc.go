// Package cli implements edora-admin, the operator tool that prepares
// server secrets: a bcrypt digest for the admin password, a random
// token-signing key, and ad-hoc access tokens for smoke tests.
//
// Usage:
//
//	edora-admin hash-password
//	edora-admin gen-secret [-n bytes]
//	edora-admin token -s secret [-u username] [-t ttl]
package cli
