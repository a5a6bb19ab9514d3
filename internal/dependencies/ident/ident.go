package ident

import "github.com/google/uuid"

// Ident generates opaque unique identifiers and can be mocked for testing
type Ident interface {
	// NewID returns a fresh unique identifier
	NewID() string
}

// UUIDIdent implements Ident using random UUIDs
type UUIDIdent struct{}

// New creates a new UUIDIdent
func New() *UUIDIdent {
	return &UUIDIdent{}
}

// NewID returns a new UUID string
func (i *UUIDIdent) NewID() string {
	return uuid.New().String()
}
