// Package authz is the shared ownership guard used by every mutating
// entry point in Marlowe. All creator/owner checks route through here so
// the comparison and its failure mode stay identical across contexts.
package authz

import (
	"errors"
	"strings"
)

// ErrUnauthorized is surfaced unchanged by module application layers and
// mapped to 403 by the HTTP platform layer.
var ErrUnauthorized = errors.New("principal lacks required authority over entity")

// RequireOwner fails unless principal is the entity's current owner.
// Blank principals never match anything, including a blank owner.
func RequireOwner(principal string, owner string) error {
	if strings.TrimSpace(principal) == "" {
		return ErrUnauthorized
	}
	if principal != owner {
		return ErrUnauthorized
	}
	return nil
}

// IsOwner is the non-failing form used by pure ownership reads.
func IsOwner(principal string, owner string) bool {
	return RequireOwner(principal, owner) == nil
}
