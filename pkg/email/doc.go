// Package email defines the outbound mail contract consumed by the OTP
// ledger, with a Postmark-backed production sender and a file-based sender
// for development.
package email
