package service

import "github.com/google/uuid"

// UUIDGenerator is the default session id generator using google/uuid.
type UUIDGenerator struct{}

// NewString generates a new UUID string
func (g *UUIDGenerator) NewString() string {
	return uuid.NewString()
}
