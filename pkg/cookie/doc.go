// Package cookie provides a cookie manager with HMAC signing and AES-GCM
// encryption, supporting secret rotation. The session transport uses the
// encrypted variant so session tokens are opaque to the client.
package cookie
