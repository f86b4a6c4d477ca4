// Package ident generates the unique, URL-safe string identifiers used for
// channels, videos and comments.
package ident

import "github.com/google/uuid"

// New returns a fresh unique identifier. UUIDs are lowercase hex plus
// dashes, so they are safe to embed in URL paths without escaping.
func New() string {
	return uuid.NewString()
}
