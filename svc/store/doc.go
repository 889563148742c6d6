// Package store provides the MongoDB persistence layer: user accounts,
// pending one-time-code challenges, and OAuth state tokens. Each store
// implements the interface its consumer package defines, so services never
// touch the driver directly.
package store
