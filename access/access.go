// Package access implements caller authorization for the launchpad ledger:
// a super-admin set once at genesis, per-sale organizer checks, and the
// global allow-list that gates private sales.
package access

import (
	"encoding/hex"
	"errors"
	"sync"
)

var (
	ErrUnauthorized = errors.New("access: caller is not authorized")
	ErrNotEligible  = errors.New("access: you are not eligible for this sale")
)

// Identity is a caller-identity token, comparable and usable as a map key.
// The core never derives identities itself; callers supply them.
type Identity [32]byte

// IdentityFromBytes builds an Identity from up to 32 bytes.
func IdentityFromBytes(b []byte) Identity {
	var id Identity
	copy(id[:], b)
	return id
}

// IdentityFromString builds a deterministic Identity from a label.
// Convenient for tests and demos.
func IdentityFromString(s string) Identity {
	return IdentityFromBytes([]byte(s))
}

// String returns the hex encoding of the identity.
func (id Identity) String() string {
	return hex.EncodeToString(id[:])
}

// IsZero reports whether the identity is the zero value.
func (id Identity) IsZero() bool {
	return id == Identity{}
}

// Roles holds the authorization state: the immutable super-admin and the
// append-only allow-list for private sales.
type Roles struct {
	superAdmin Identity

	mu      sync.RWMutex
	allowed map[Identity]struct{}
}

// NewRoles creates the authorization state with the given super-admin.
// The super-admin is immutable thereafter.
func NewRoles(superAdmin Identity) *Roles {
	return &Roles{
		superAdmin: superAdmin,
		allowed:    make(map[Identity]struct{}),
	}
}

// SuperAdmin returns the super-admin identity.
func (r *Roles) SuperAdmin() Identity {
	return r.superAdmin
}

// RequireSuperAdmin fails unless caller is the super-admin.
func (r *Roles) RequireSuperAdmin(caller Identity) error {
	if caller != r.superAdmin {
		return ErrUnauthorized
	}
	return nil
}

// RequireOrganizer fails unless caller matches the sale organizer.
func RequireOrganizer(caller, organizer Identity) error {
	if caller != organizer {
		return ErrUnauthorized
	}
	return nil
}

// AddAllowed inserts an identity into the allow-list. Admin-only.
// Inserting an existing identity is a no-op, not an error.
func (r *Roles) AddAllowed(caller, id Identity) error {
	if err := r.RequireSuperAdmin(caller); err != nil {
		return err
	}
	r.mu.Lock()
	r.allowed[id] = struct{}{}
	r.mu.Unlock()
	return nil
}

// IsAllowed reports allow-list membership.
func (r *Roles) IsAllowed(id Identity) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.allowed[id]
	return ok
}

// RequireAllowed is a no-op for public sales; for private sales it fails
// unless the caller is on the allow-list.
func (r *Roles) RequireAllowed(caller Identity, private bool) error {
	if !private {
		return nil
	}
	if !r.IsAllowed(caller) {
		return ErrNotEligible
	}
	return nil
}

// AllowedCount returns the number of allow-listed identities.
func (r *Roles) AllowedCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.allowed)
}
