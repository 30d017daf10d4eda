package audit

import (
	"sort"
	"time"

	"github.com/spec-kit/ops-console/internal/domain"
)

// AnnotationLog is the ordered, append-biased collection of audit entries.
// Storage order is most-recent-first: new entries are prepended, so the
// stored order is already the reverse-chronological view. Entries are
// addressed by their CreatedAt key, unique within one ticket.
type AnnotationLog struct {
	entries []domain.Annotation
}

// NewLog builds a log over existing entries, preserving their stored order.
func NewLog(entries []domain.Annotation) *AnnotationLog {
	copied := make([]domain.Annotation, len(entries))
	copy(copied, entries)
	return &AnnotationLog{entries: copied}
}

// Len returns the number of entries.
func (l *AnnotationLog) Len() int {
	return len(l.entries)
}

// Prepend inserts an entry at the head of the stored list.
func (l *AnnotationLog) Prepend(entry domain.Annotation) {
	l.entries = append([]domain.Annotation{entry}, l.entries...)
}

// EditByKey replaces the text of the unique entry whose CreatedAt equals
// key, preserving its position and every other field. A non-matching key is
// a no-op; it reports whether an entry was edited.
func (l *AnnotationLog) EditByKey(key time.Time, text string) bool {
	for i := range l.entries {
		if l.entries[i].CreatedAt.Equal(key) {
			l.entries[i].Text = text
			return true
		}
	}
	return false
}

// DeleteByKey removes the unique entry whose CreatedAt equals key. A
// non-matching key is a no-op; it reports whether an entry was removed.
func (l *AnnotationLog) DeleteByKey(key time.Time) bool {
	for i := range l.entries {
		if l.entries[i].CreatedAt.Equal(key) {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// ReverseChronological returns the stored order directly. This is only the
// true newest-first view while every insertion was in fact the most recent;
// manual edits do not reorder.
func (l *AnnotationLog) ReverseChronological() []domain.Annotation {
	out := make([]domain.Annotation, len(l.entries))
	copy(out, l.entries)
	return out
}

// Chronological returns a stable ascending sort by CreatedAt, independent
// of storage order. The timeline projection consumes this view.
func (l *AnnotationLog) Chronological() []domain.Annotation {
	out := l.ReverseChronological()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
