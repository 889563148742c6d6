// Package sanitizer normalizes user-supplied input before it is validated or
// used as a storage key. Email normalization is the load-bearing helper: the
// credential store reconciles accounts by lower-cased email.
package sanitizer
