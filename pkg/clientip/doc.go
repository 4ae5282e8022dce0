// Package clientip extracts the client IP address from HTTP requests,
// honoring common reverse-proxy headers with validation. The session
// manager records this address for anomaly logging.
package clientip
