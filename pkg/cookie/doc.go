// Package cookie manages HTTP cookies with HMAC signing and AES-256-GCM
// encryption on top of plain reads and writes. The session transport uses
// the encrypted variant so session identifiers never appear verbatim in
// the cookie jar.
//
// Secrets rotate gracefully: signing and encryption always use the first
// configured secret, verification and decryption try all of them.
package cookie
