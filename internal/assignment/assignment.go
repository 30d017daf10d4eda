// Package assignment models the mutually exclusive ticket assignee: a
// ticket is held by one operator, one group, or nobody, never a mix.
package assignment

// Kind tags the assignment variant.
type Kind int

const (
	KindNone Kind = iota
	KindUser
	KindGroup
)

// Assignment is a tagged selection of operator or group. The zero value is
// unassigned. Exclusion is enforced at the setters: selecting an operator
// clears any group selection and vice versa.
type Assignment struct {
	kind    Kind
	userID  string
	groupID string
}

// None returns an empty assignment.
func None() Assignment {
	return Assignment{}
}

// FromRefs reconciles the stored nullable pair into a tagged value. When a
// stored row violates the exclusion invariant the operator wins and the
// group reference is dropped.
func FromRefs(userID, groupID *string) Assignment {
	if userID != nil && *userID != "" {
		return Assignment{kind: KindUser, userID: *userID}
	}
	if groupID != nil && *groupID != "" {
		return Assignment{kind: KindGroup, groupID: *groupID}
	}
	return Assignment{}
}

// SetUser selects an operator, clearing any group selection.
func (a *Assignment) SetUser(id string) {
	if id == "" {
		a.Clear()
		return
	}
	*a = Assignment{kind: KindUser, userID: id}
}

// SetGroup selects a group, clearing any operator selection.
func (a *Assignment) SetGroup(id string) {
	if id == "" {
		a.Clear()
		return
	}
	*a = Assignment{kind: KindGroup, groupID: id}
}

// Clear resets to unassigned.
func (a *Assignment) Clear() {
	*a = Assignment{}
}

// Kind returns the active variant.
func (a Assignment) Kind() Kind {
	return a.kind
}

// UserRef returns the operator reference, or nil when not a user assignment.
func (a Assignment) UserRef() *string {
	if a.kind != KindUser {
		return nil
	}
	id := a.userID
	return &id
}

// GroupRef returns the group reference, or nil when not a group assignment.
func (a Assignment) GroupRef() *string {
	if a.kind != KindGroup {
		return nil
	}
	id := a.groupID
	return &id
}
