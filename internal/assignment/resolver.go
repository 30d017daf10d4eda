package assignment

import (
	"strings"

	"github.com/spec-kit/ops-console/internal/domain"
)

// Fallback labels used when a reference cannot be resolved against the
// directory. Rendering degrades to these rather than failing.
const (
	LabelUnassigned = "Sin asignar"
	LabelNoGroup    = "Sin grupo"
)

// userMatcher reports whether a directory user answers to the given key.
type userMatcher func(domain.User, string) bool

// The directory is not normalized on a single identity: tickets imported
// from the previous system reference operators by legacy id, by name, or by
// email. Matchers run in priority order; keep the ambiguity visible here
// instead of burying it in one equality check.
var userMatchers = []userMatcher{
	func(u domain.User, key string) bool { return u.ID == key },
	func(u domain.User, key string) bool { return u.LegacyID != "" && u.LegacyID == key },
	func(u domain.User, key string) bool { return u.Name != "" && u.Name == key },
	func(u domain.User, key string) bool {
		return u.Email != "" && strings.EqualFold(u.Email, key)
	},
}

// Resolver resolves assignment references to display names against the
// read-only user and group directories. Directories are loaded once per
// session and never refreshed mid-session.
type Resolver struct {
	users  []domain.User
	groups []domain.Group
}

// NewResolver builds a resolver over directory data.
func NewResolver(users []domain.User, groups []domain.Group) *Resolver {
	return &Resolver{users: users, groups: groups}
}

// LookupUser finds the directory user answering to key, trying each
// identity field in priority order.
func (r *Resolver) LookupUser(key string) (domain.User, bool) {
	if key == "" {
		return domain.User{}, false
	}
	for _, match := range userMatchers {
		for _, u := range r.users {
			if match(u, key) {
				return u, true
			}
		}
	}
	return domain.User{}, false
}

// UserLabel resolves an operator reference to a display name, degrading to
// "Sin asignar" for nil or unresolved references.
func (r *Resolver) UserLabel(ref *string) string {
	if ref == nil || *ref == "" {
		return LabelUnassigned
	}
	if u, ok := r.LookupUser(*ref); ok && u.Name != "" {
		return u.Name
	}
	return LabelUnassigned
}

// GroupLabel resolves a group reference to a display name, degrading to
// "Sin grupo" for nil or unresolved references.
func (r *Resolver) GroupLabel(ref *string) string {
	if ref == nil || *ref == "" {
		return LabelNoGroup
	}
	for _, g := range r.groups {
		if g.ID == *ref {
			return g.Name
		}
	}
	return LabelNoGroup
}
