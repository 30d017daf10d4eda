// Package console is the ticket view session: an explicit draft/commit
// model over the ticket store, decoupled from any rendering surface. User
// edits mutate an immutable snapshot draft through reducers; a single
// Commit entry point diffs the draft against the last-known server state
// and appends the resulting audit entry before saving the whole ticket.
package console

import (
	"context"
	"time"

	"github.com/spec-kit/ops-console/internal/assignment"
	"github.com/spec-kit/ops-console/internal/audit"
	"github.com/spec-kit/ops-console/internal/domain"
	"github.com/spec-kit/ops-console/internal/media"
)

// TicketUpdate is the full-replace save body. It mirrors the PUT contract:
// field state plus the complete annotation log, last-writer-wins, no
// concurrency token.
type TicketUpdate struct {
	Status          domain.TicketStatus
	Priority        domain.TicketPriority
	Visit           bool
	Amount          *float64
	AmountCurrency  domain.Currency
	Description     string
	AssignedTo      *string
	AssignedGroupID *string
	Annotations     []domain.Annotation
	NotifyClient    bool
}

// TicketStore is the external collaborator holding tickets. Requests are
// cancellable through the context tied to the viewing session's lifetime.
type TicketStore interface {
	GetTicket(ctx context.Context, id string) (*domain.Ticket, error)
	PutTicket(ctx context.Context, id string, update TicketUpdate) (*domain.Ticket, error)
}

// DirectoryStore serves the read-only user and group directories, fetched
// once per session without invalidation.
type DirectoryStore interface {
	GetUsers(ctx context.Context) ([]domain.User, error)
	GetGroups(ctx context.Context) ([]domain.Group, error)
}

// Session is one operator viewing one ticket. Diffing and log mutation are
// synchronous and happen entirely before a save request is issued; a failed
// save leaves every piece of local state unchanged for retry.
type Session struct {
	store    TicketStore
	resolver *assignment.Resolver
	author   audit.Author

	ticket *domain.Ticket
	draft  domain.TicketSnapshot
	assign assignment.Assignment

	log     *audit.AnnotationLog
	buffer  *media.DraftBuffer
	capture *media.CaptureSession
	gate    EditGate

	now func() time.Time
}

// NewSession loads the ticket and directories and opens a view session.
// The edit gate starts closed; the view begins read-only.
func NewSession(ctx context.Context, store TicketStore, directories DirectoryStore, ticketID string, author audit.Author) (*Session, error) {
	ticket, err := store.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	users, err := directories.GetUsers(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := directories.GetGroups(ctx)
	if err != nil {
		return nil, err
	}

	buffer := media.NewDraftBuffer()
	return &Session{
		store:    store,
		resolver: assignment.NewResolver(users, groups),
		author:   author,
		ticket:   ticket,
		draft:    ticket.Snapshot(),
		assign:   assignment.FromRefs(ticket.AssignedTo, ticket.AssignedGroupID),
		log:      audit.NewLog(ticket.Annotations),
		buffer:   buffer,
		capture:  media.NewCaptureSession(buffer),
		now:      time.Now,
	}, nil
}

// Ticket returns the last-known server state.
func (s *Session) Ticket() *domain.Ticket {
	return s.ticket
}

// Draft returns the current draft snapshot.
func (s *Session) Draft() domain.TicketSnapshot {
	return s.draft
}

// Gate exposes the edit gate for the view to toggle.
func (s *Session) Gate() *EditGate {
	return &s.gate
}

// MediaDraft exposes the pending media buffer.
func (s *Session) MediaDraft() *media.DraftBuffer {
	return s.buffer
}

// Capture exposes the audio capture session feeding the media draft.
func (s *Session) Capture() *media.CaptureSession {
	return s.capture
}

// Resolver exposes directory display resolution for the view.
func (s *Session) Resolver() *assignment.Resolver {
	return s.resolver
}

// Annotations returns the reverse-chronological list view of the trail.
func (s *Session) Annotations() []domain.Annotation {
	return s.log.ReverseChronological()
}

// Timeline returns the chronological trail projected onto horizontal
// positions.
func (s *Session) Timeline() []audit.TimelinePoint {
	return audit.ProjectTimeline(s.log.Chronological())
}

// apply runs one pure reducer over the draft, guarded by the edit gate.
func (s *Session) apply(reduce func(domain.TicketSnapshot) domain.TicketSnapshot) error {
	if !s.gate.Enabled() {
		return ErrEditingLocked
	}
	s.draft = reduce(s.draft)
	return nil
}

// SetStatus updates the draft status.
func (s *Session) SetStatus(status domain.TicketStatus) error {
	return s.apply(func(d domain.TicketSnapshot) domain.TicketSnapshot {
		d.Status = status
		return d
	})
}

// SetPriority updates the draft priority.
func (s *Session) SetPriority(priority domain.TicketPriority) error {
	return s.apply(func(d domain.TicketSnapshot) domain.TicketSnapshot {
		d.Priority = priority
		return d
	})
}

// SetVisit updates the draft visit flag.
func (s *Session) SetVisit(visit bool) error {
	return s.apply(func(d domain.TicketSnapshot) domain.TicketSnapshot {
		d.Visit = visit
		return d
	})
}

// SetAmount updates the draft amount and currency as one composite value.
func (s *Session) SetAmount(amount *float64, currency domain.Currency) error {
	return s.apply(func(d domain.TicketSnapshot) domain.TicketSnapshot {
		d.Amount = amount
		d.AmountCurrency = currency
		return d
	})
}

// SetDescription updates the draft description markup.
func (s *Session) SetDescription(markup string) error {
	return s.apply(func(d domain.TicketSnapshot) domain.TicketSnapshot {
		d.Description = markup
		return d
	})
}

// AssignUser selects an operator, displacing any group assignment.
func (s *Session) AssignUser(id string) error {
	if !s.gate.Enabled() {
		return ErrEditingLocked
	}
	s.assign.SetUser(id)
	return nil
}

// AssignGroup selects a group, displacing any operator assignment.
func (s *Session) AssignGroup(id string) error {
	if !s.gate.Enabled() {
		return ErrEditingLocked
	}
	s.assign.SetGroup(id)
	return nil
}

// ClearAssignment resets the ticket to unassigned.
func (s *Session) ClearAssignment() error {
	if !s.gate.Enabled() {
		return ErrEditingLocked
	}
	s.assign.Clear()
	return nil
}

// Commit diffs the draft against the last-known server state, appends the
// resulting audit entry (if any) and saves the whole ticket. On success the
// media draft is flushed and the session re-bases on the store's response;
// on failure nothing local changes and the commit can simply be retried.
// The edit gate is untouched either way.
//
// Commit returns the annotation it recorded, or nil when the save carried
// field updates only.
func (s *Session) Commit(ctx context.Context, note string, notifyClient bool) (*domain.Annotation, error) {
	next := s.draft
	next.AssignedTo = s.assign.UserRef()
	next.AssignedGroupID = s.assign.GroupRef()
	next = next.Normalize()

	pending := audit.MediaSet{
		Attachments: s.buffer.Attachments(),
		AudioNotes:  s.buffer.AudioNotes(),
	}
	entry := audit.BuildChange(s.ticket.Snapshot(), next, note, pending, s.resolver, s.author, s.now())

	annotations := s.log.ReverseChronological()
	if entry != nil {
		annotations = append([]domain.Annotation{*entry}, annotations...)
	}

	updated, err := s.store.PutTicket(ctx, s.ticket.ID, TicketUpdate{
		Status:          next.Status,
		Priority:        next.Priority,
		Visit:           next.Visit,
		Amount:          next.Amount,
		AmountCurrency:  next.AmountCurrency,
		Description:     next.Description,
		AssignedTo:      next.AssignedTo,
		AssignedGroupID: next.AssignedGroupID,
		Annotations:     annotations,
		NotifyClient:    notifyClient,
	})
	if err != nil {
		return nil, err
	}

	if entry != nil {
		s.log.Prepend(*entry)
	}
	s.buffer.Flush()
	s.rebase(updated)
	return entry, nil
}

// EditAnnotation replaces the text of the entry keyed by createdAt and
// persists the mutated log immediately. It bypasses diff generation and
// saves the last-known field state, not the draft. An unknown key is a
// no-op and issues no request.
func (s *Session) EditAnnotation(ctx context.Context, createdAt time.Time, text string) error {
	candidate := audit.NewLog(s.log.ReverseChronological())
	if !candidate.EditByKey(createdAt, text) {
		return nil
	}
	return s.persistLog(ctx, candidate)
}

// DeleteAnnotation removes the entry keyed by createdAt and persists the
// mutated log immediately, bypassing diff generation. An unknown key is a
// no-op and issues no request.
func (s *Session) DeleteAnnotation(ctx context.Context, createdAt time.Time) error {
	candidate := audit.NewLog(s.log.ReverseChronological())
	if !candidate.DeleteByKey(createdAt) {
		return nil
	}
	return s.persistLog(ctx, candidate)
}

func (s *Session) persistLog(ctx context.Context, candidate *audit.AnnotationLog) error {
	snapshot := s.ticket.Snapshot()
	updated, err := s.store.PutTicket(ctx, s.ticket.ID, TicketUpdate{
		Status:          snapshot.Status,
		Priority:        snapshot.Priority,
		Visit:           snapshot.Visit,
		Amount:          snapshot.Amount,
		AmountCurrency:  snapshot.AmountCurrency,
		Description:     snapshot.Description,
		AssignedTo:      snapshot.AssignedTo,
		AssignedGroupID: snapshot.AssignedGroupID,
		Annotations:     candidate.ReverseChronological(),
	})
	if err != nil {
		return err
	}
	s.log = candidate
	s.ticket = updated
	return nil
}

// rebase adopts the store's authoritative response as the new baseline.
// The annotation log keeps its local order; the draft restarts from the
// server state.
func (s *Session) rebase(updated *domain.Ticket) {
	s.ticket = updated
	s.draft = updated.Snapshot()
	s.assign = assignment.FromRefs(updated.AssignedTo, updated.AssignedGroupID)
}
