package audit

import (
	"testing"
	"time"

	"github.com/spec-kit/ops-console/internal/domain"
)

func entryAt(t time.Time, text string) domain.Annotation {
	return domain.Annotation{Text: text, CreatedAt: t, User: "Laura Méndez"}
}

func TestAnnotationLog_prependIsStoredOrder(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	log := NewLog(nil)
	log.Prepend(entryAt(base, "primero"))
	log.Prepend(entryAt(base.Add(time.Hour), "segundo"))
	log.Prepend(entryAt(base.Add(2*time.Hour), "tercero"))

	got := log.ReverseChronological()
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, want := range []string{"tercero", "segundo", "primero"} {
		if got[i].Text != want {
			t.Errorf("stored[%d] = %q, want %q", i, got[i].Text, want)
		}
	}
}

func TestAnnotationLog_editByKey(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	log := NewLog([]domain.Annotation{
		{Text: "b", CreatedAt: base.Add(time.Hour), User: "Laura Méndez", Avatar: "laura.png"},
		{Text: "a", CreatedAt: base, User: "Diego Pereira"},
	})

	if !log.EditByKey(base.Add(time.Hour), "editado") {
		t.Fatal("EditByKey() = false, want true")
	}
	got := log.ReverseChronological()
	if got[0].Text != "editado" {
		t.Errorf("edited text = %q, want %q", got[0].Text, "editado")
	}
	if got[0].User != "Laura Méndez" || got[0].Avatar != "laura.png" {
		t.Errorf("edit must preserve other fields, got %+v", got[0])
	}
	if got[1].Text != "a" {
		t.Errorf("sibling entry mutated: %+v", got[1])
	}

	if log.EditByKey(base.Add(42*time.Hour), "fantasma") {
		t.Error("EditByKey() with unknown key = true, want no-op false")
	}
}

func TestAnnotationLog_deleteByKey(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	log := NewLog([]domain.Annotation{
		entryAt(base.Add(time.Hour), "b"),
		entryAt(base, "a"),
	})

	if !log.DeleteByKey(base) {
		t.Fatal("DeleteByKey() = false, want true")
	}
	if log.Len() != 1 {
		t.Fatalf("Len = %d, want 1", log.Len())
	}
	if log.DeleteByKey(base) {
		t.Error("second DeleteByKey() with same key should be a no-op")
	}
}

func TestAnnotationLog_chronologicalIndependentOfStorage(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	// Deliberately scrambled storage order, as after out-of-band edits.
	log := NewLog([]domain.Annotation{
		entryAt(base.Add(time.Hour), "b"),
		entryAt(base.Add(3*time.Hour), "d"),
		entryAt(base, "a"),
		entryAt(base.Add(2*time.Hour), "c"),
	})

	chrono := log.Chronological()
	for i, want := range []string{"a", "b", "c", "d"} {
		if chrono[i].Text != want {
			t.Errorf("chronological[%d] = %q, want %q", i, chrono[i].Text, want)
		}
	}

	// reverseChronological still equals stored order, scrambled or not.
	stored := log.ReverseChronological()
	for i, want := range []string{"b", "d", "a", "c"} {
		if stored[i].Text != want {
			t.Errorf("stored[%d] = %q, want %q", i, stored[i].Text, want)
		}
	}
}

func TestAnnotationLog_viewsAreCopies(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	log := NewLog([]domain.Annotation{entryAt(base, "a")})

	view := log.ReverseChronological()
	view[0].Text = "mutado"
	if got := log.ReverseChronological()[0].Text; got != "a" {
		t.Errorf("mutating a view leaked into the log: %q", got)
	}
}
