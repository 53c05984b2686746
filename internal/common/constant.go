// Package common contains shared constants, sentinel errors and small
// helpers used across the client.
package common

// RequestIDHeaderName is the HTTP header carrying a per-request id.
const RequestIDHeaderName = "X-Request-ID"

// AppName is used in prompts and the default database file name.
const AppName = "melodeck"
