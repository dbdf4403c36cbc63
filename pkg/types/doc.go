// Package types defines the shared interfaces used across releasedir.
//
// The FS interface decouples release tree operations from the real
// filesystem so that tests can run against in-memory implementations.
package types
