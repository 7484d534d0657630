// Package creds holds the bearer credential shared between the token watch
// (single writer) and outgoing authorized requests (many readers). The cell is
// injected explicitly wherever it is needed; there is no package-level state.
package creds

import "sync/atomic"

// Cell is a read/write holder for the current auth token. Replace semantics
// are atomic; no further synchronization is required.
type Cell struct {
	token atomic.Value
}

func NewCell() *Cell {
	c := &Cell{}
	c.token.Store("")
	return c
}

// Set replaces the stored token. An empty string clears the credential.
func (c *Cell) Set(token string) {
	if c == nil {
		return
	}
	c.token.Store(token)
}

// Get returns the current token, or the empty string when none is set.
func (c *Cell) Get() string {
	if c == nil {
		return ""
	}
	if v, ok := c.token.Load().(string); ok {
		return v
	}
	return ""
}
