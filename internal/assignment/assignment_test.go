package assignment

import (
	"testing"

	"github.com/spec-kit/ops-console/internal/domain"
)

func TestAssignment_mutualExclusion(t *testing.T) {
	var a Assignment
	a.SetUser("u-1")
	if a.Kind() != KindUser {
		t.Fatalf("Kind = %v, want KindUser", a.Kind())
	}

	a.SetGroup("g-1")
	if a.Kind() != KindGroup {
		t.Fatalf("Kind = %v, want KindGroup", a.Kind())
	}
	if a.UserRef() != nil {
		t.Error("setting a group must clear the user selection")
	}
	if ref := a.GroupRef(); ref == nil || *ref != "g-1" {
		t.Errorf("GroupRef = %v, want g-1", ref)
	}

	a.SetUser("u-2")
	if a.GroupRef() != nil {
		t.Error("setting a user must clear the group selection")
	}
	if ref := a.UserRef(); ref == nil || *ref != "u-2" {
		t.Errorf("UserRef = %v, want u-2", ref)
	}

	a.Clear()
	if a.Kind() != KindNone || a.UserRef() != nil || a.GroupRef() != nil {
		t.Errorf("Clear() left %+v", a)
	}
}

func TestAssignment_emptyIDClears(t *testing.T) {
	var a Assignment
	a.SetUser("u-1")
	a.SetUser("")
	if a.Kind() != KindNone {
		t.Errorf("SetUser(\"\") should clear, got kind %v", a.Kind())
	}
}

func TestFromRefs(t *testing.T) {
	user, group := "u-1", "g-1"

	if a := FromRefs(nil, nil); a.Kind() != KindNone {
		t.Errorf("FromRefs(nil, nil).Kind = %v, want KindNone", a.Kind())
	}
	if a := FromRefs(&user, nil); a.Kind() != KindUser {
		t.Errorf("FromRefs(user, nil).Kind = %v, want KindUser", a.Kind())
	}
	if a := FromRefs(nil, &group); a.Kind() != KindGroup {
		t.Errorf("FromRefs(nil, group).Kind = %v, want KindGroup", a.Kind())
	}
	// A stored row violating the exclusion invariant: the user wins.
	if a := FromRefs(&user, &group); a.Kind() != KindUser || a.GroupRef() != nil {
		t.Errorf("FromRefs(user, group) = %+v, want user assignment only", a)
	}
}

func directory() *Resolver {
	return NewResolver(
		[]domain.User{
			{ID: "u-1", LegacyID: "900", Name: "Laura Méndez", Email: "laura@example.com"},
			{ID: "u-2", Name: "Diego Pereira", Email: "diego@example.com"},
		},
		[]domain.Group{{ID: "g-1", Name: "Soporte"}},
	)
}

func TestResolver_multiKeyLookup(t *testing.T) {
	r := directory()
	cases := []struct {
		key  string
		want string
	}{
		{"u-1", "Laura Méndez"},       // primary id
		{"900", "Laura Méndez"},       // legacy id
		{"Diego Pereira", "Diego Pereira"}, // display name
		{"LAURA@EXAMPLE.COM", "Laura Méndez"}, // email, case-insensitive
	}
	for _, tc := range cases {
		u, ok := r.LookupUser(tc.key)
		if !ok {
			t.Errorf("LookupUser(%q) not found", tc.key)
			continue
		}
		if u.Name != tc.want {
			t.Errorf("LookupUser(%q).Name = %q, want %q", tc.key, u.Name, tc.want)
		}
	}
}

func TestResolver_labels(t *testing.T) {
	r := directory()
	ghost := "no-such"
	group := "g-1"

	if got := r.UserLabel(nil); got != LabelUnassigned {
		t.Errorf("UserLabel(nil) = %q, want %q", got, LabelUnassigned)
	}
	if got := r.UserLabel(&ghost); got != LabelUnassigned {
		t.Errorf("UserLabel(ghost) = %q, want %q", got, LabelUnassigned)
	}
	if got := r.GroupLabel(&group); got != "Soporte" {
		t.Errorf("GroupLabel(g-1) = %q, want Soporte", got)
	}
	if got := r.GroupLabel(&ghost); got != LabelNoGroup {
		t.Errorf("GroupLabel(ghost) = %q, want %q", got, LabelNoGroup)
	}
}
