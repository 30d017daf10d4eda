package console

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spec-kit/ops-console/internal/audit"
	"github.com/spec-kit/ops-console/internal/domain"
)

// fakeStore records puts and can be told to fail the next save.
type fakeStore struct {
	ticket   *domain.Ticket
	puts     []TicketUpdate
	failNext error
}

func (f *fakeStore) GetTicket(_ context.Context, id string) (*domain.Ticket, error) {
	copied := *f.ticket
	return &copied, nil
}

func (f *fakeStore) PutTicket(_ context.Context, id string, update TicketUpdate) (*domain.Ticket, error) {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return nil, err
	}
	f.puts = append(f.puts, update)
	updated := *f.ticket
	updated.Status = update.Status
	updated.Priority = update.Priority
	updated.Visit = update.Visit
	updated.Amount = update.Amount
	updated.AmountCurrency = update.AmountCurrency
	updated.Description = update.Description
	updated.AssignedTo = update.AssignedTo
	updated.AssignedGroupID = update.AssignedGroupID
	updated.Annotations = update.Annotations
	updated.UpdatedAt = time.Now()
	f.ticket = &updated
	return &updated, nil
}

func (f *fakeStore) GetUsers(context.Context) ([]domain.User, error) {
	return []domain.User{
		{ID: "u-1", Name: "Laura Méndez"},
		{ID: "u-2", Name: "Diego Pereira"},
	}, nil
}

func (f *fakeStore) GetGroups(context.Context) ([]domain.Group, error) {
	return []domain.Group{{ID: "g-1", Name: "Soporte"}}, nil
}

func testTicket() *domain.Ticket {
	return &domain.Ticket{
		ID:         "t-1",
		Title:      "Medidor sin señal",
		ClientID:   "c-1",
		ClientName: "UTE Maldonado",
		Status:     domain.StatusNuevo,
		Priority:   domain.PriorityMedia,
		Annotations: []domain.Annotation{
			{Text: "alta del ticket", CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), User: "Diego Pereira"},
		},
	}
}

func newTestSession(t *testing.T) (*Session, *fakeStore) {
	t.Helper()
	store := &fakeStore{ticket: testTicket()}
	session, err := NewSession(context.Background(), store, store, "t-1", audit.Author{Name: "Laura Méndez"})
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	return session, store
}

func TestSession_gateBlocksEdits(t *testing.T) {
	session, _ := newTestSession(t)

	if err := session.SetStatus(domain.StatusAbierto); !errors.Is(err, ErrEditingLocked) {
		t.Fatalf("SetStatus with closed gate = %v, want ErrEditingLocked", err)
	}
	session.Gate().Open()
	if err := session.SetStatus(domain.StatusAbierto); err != nil {
		t.Fatalf("SetStatus with open gate = %v", err)
	}
	if session.Draft().Status != domain.StatusAbierto {
		t.Errorf("draft status = %q, want Abierto", session.Draft().Status)
	}
}

func TestSession_commitRecordsChangeAndRebases(t *testing.T) {
	session, store := newTestSession(t)
	session.Gate().Open()
	if err := session.SetStatus(domain.StatusEnProceso); err != nil {
		t.Fatal(err)
	}

	entry, err := session.Commit(context.Background(), "", false)
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if entry == nil {
		t.Fatal("Commit() entry = nil, want change annotation")
	}
	if !strings.Contains(entry.Text, "Estado") {
		t.Errorf("entry text = %q, want status change", entry.Text)
	}

	if len(store.puts) != 1 {
		t.Fatalf("puts = %d, want 1", len(store.puts))
	}
	saved := store.puts[0]
	if len(saved.Annotations) != 2 {
		t.Fatalf("saved annotations = %d, want new entry prepended to existing log", len(saved.Annotations))
	}
	if saved.Annotations[0].Text != entry.Text {
		t.Error("new entry must be at the head of the saved log")
	}
	if session.Ticket().Status != domain.StatusEnProceso {
		t.Errorf("session not rebased, status = %q", session.Ticket().Status)
	}
	if session.Gate().Enabled() != true {
		t.Error("commit must not touch the edit gate")
	}
}

func TestSession_commitWithoutChangesSavesFieldsOnly(t *testing.T) {
	session, store := newTestSession(t)
	session.Gate().Open()

	entry, err := session.Commit(context.Background(), "<p></p>", false)
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if entry != nil {
		t.Fatalf("Commit() entry = %+v, want nil for no-op diff", entry)
	}
	if len(store.puts) != 1 {
		t.Fatalf("puts = %d, want field update still issued", len(store.puts))
	}
	if got := len(store.puts[0].Annotations); got != 1 {
		t.Errorf("saved annotations = %d, want unchanged log", got)
	}
}

func TestSession_failedSavePreservesLocalState(t *testing.T) {
	session, store := newTestSession(t)
	session.Gate().Open()
	if err := session.SetPriority(domain.PriorityAlta); err != nil {
		t.Fatal(err)
	}
	session.MediaDraft().AddAudio(domain.AudioNote{ID: "audio-1"})
	store.failNext = errors.New("503 from store")

	if _, err := session.Commit(context.Background(), "<p>nota</p>", false); err == nil {
		t.Fatal("Commit() = nil error, want transport failure")
	}

	// Draft, log and media all stay put for a retry.
	if session.Draft().Priority != domain.PriorityAlta {
		t.Error("draft lost after failed save")
	}
	if got := len(session.Annotations()); got != 1 {
		t.Errorf("log mutated on failed save, len = %d", got)
	}
	if session.MediaDraft().Empty() {
		t.Error("media draft cleared on failed save")
	}

	// Retry succeeds and flushes the media into the annotation.
	entry, err := session.Commit(context.Background(), "<p>nota</p>", false)
	if err != nil {
		t.Fatalf("retry Commit() error = %v", err)
	}
	if entry == nil || len(entry.AudioNotes) != 1 {
		t.Fatalf("retry entry = %+v, want audio note attached", entry)
	}
	if !session.MediaDraft().Empty() {
		t.Error("media draft should be cleared after successful commit")
	}
}

func TestSession_commitNormalizesVisitFlag(t *testing.T) {
	session, store := newTestSession(t)
	session.Gate().Open()
	if err := session.SetStatus(domain.StatusVisita); err != nil {
		t.Fatal(err)
	}

	if _, err := session.Commit(context.Background(), "", false); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if !store.puts[0].Visit {
		t.Error("status Visita must force the visit flag on save")
	}
}

func TestSession_assignmentExclusionOnCommit(t *testing.T) {
	session, store := newTestSession(t)
	session.Gate().Open()
	if err := session.AssignUser("u-2"); err != nil {
		t.Fatal(err)
	}
	if err := session.AssignGroup("g-1"); err != nil {
		t.Fatal(err)
	}

	if _, err := session.Commit(context.Background(), "", false); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	saved := store.puts[0]
	if saved.AssignedTo != nil {
		t.Error("group assignment must clear the user reference")
	}
	if saved.AssignedGroupID == nil || *saved.AssignedGroupID != "g-1" {
		t.Errorf("AssignedGroupID = %v, want g-1", saved.AssignedGroupID)
	}
}

func TestSession_editAnnotationBypassesDiff(t *testing.T) {
	session, store := newTestSession(t)
	key := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	// Works with the gate closed: log maintenance is not a field edit.
	if err := session.EditAnnotation(context.Background(), key, "texto corregido"); err != nil {
		t.Fatalf("EditAnnotation() error = %v", err)
	}
	if len(store.puts) != 1 {
		t.Fatalf("puts = %d, want immediate persist", len(store.puts))
	}
	if got := store.puts[0].Annotations[0].Text; got != "texto corregido" {
		t.Errorf("persisted text = %q", got)
	}
	if got := session.Annotations()[0].Text; got != "texto corregido" {
		t.Errorf("local log text = %q", got)
	}
}

func TestSession_editAnnotationUnknownKeyIsNoop(t *testing.T) {
	session, store := newTestSession(t)

	if err := session.EditAnnotation(context.Background(), time.Now(), "x"); err != nil {
		t.Fatalf("EditAnnotation() error = %v", err)
	}
	if len(store.puts) != 0 {
		t.Error("unknown key must not issue a save")
	}
}

func TestSession_deleteAnnotation(t *testing.T) {
	session, store := newTestSession(t)
	key := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	if err := session.DeleteAnnotation(context.Background(), key); err != nil {
		t.Fatalf("DeleteAnnotation() error = %v", err)
	}
	if len(store.puts) != 1 || len(store.puts[0].Annotations) != 0 {
		t.Fatalf("delete not persisted, puts = %+v", store.puts)
	}
	if got := len(session.Annotations()); got != 0 {
		t.Errorf("local log len = %d, want 0", got)
	}
}

func TestSession_timelineMatchesChronology(t *testing.T) {
	session, _ := newTestSession(t)
	session.Gate().Open()
	_ = session.SetStatus(domain.StatusAbierto)
	if _, err := session.Commit(context.Background(), "", false); err != nil {
		t.Fatal(err)
	}

	points := session.Timeline()
	if len(points) != 2 {
		t.Fatalf("timeline points = %d, want 2", len(points))
	}
	if points[0].Entry.Text != "alta del ticket" {
		t.Errorf("timeline[0] = %q, want oldest entry first", points[0].Entry.Text)
	}
	if points[0].Percent != 0 || points[1].Percent != 100 {
		t.Errorf("percents = %v/%v, want 0/100", points[0].Percent, points[1].Percent)
	}
}
