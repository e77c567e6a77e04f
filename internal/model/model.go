// Package model defines the domain types for nestling.
package model

import "github.com/google/uuid"

// NewID allocates an opaque unique identifier for domain entities.
func NewID() string {
	return uuid.New().String()
}
