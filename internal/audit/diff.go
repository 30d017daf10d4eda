// Package audit turns ticket edits into a durable, human-readable trail of
// what changed, and projects that trail for display.
package audit

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/spec-kit/ops-console/internal/assignment"
	"github.com/spec-kit/ops-console/internal/domain"
)

// Block headings and labels baked into annotation markup. These strings are
// part of the stored trail, so changing them rewrites history for readers.
const (
	headingChanges = "Cambios del ticket"
	headingDetail  = "Detalle técnico"
	placeholder    = "Cambios registrados"

	labelStatus      = "Estado"
	labelPriority    = "Prioridad"
	labelVisit       = "Visita"
	labelAmount      = "Importe"
	labelDescription = "Descripción"
	labelAssignee    = "Asignado a"
	labelGroup       = "Grupo"

	noAmount = "Sin importe"
)

// Author identifies who is committing the change.
type Author struct {
	Name   string
	Avatar string
}

// MediaSet is the media draft content destined for the next annotation.
type MediaSet struct {
	Attachments []domain.Attachment
	AudioNotes  []domain.AudioNote
}

// Empty reports whether the set carries nothing.
func (m MediaSet) Empty() bool {
	return len(m.Attachments) == 0 && len(m.AudioNotes) == 0
}

// BuildChange compares two snapshots plus a freeform note plus pending media
// and produces one audit entry, or nil when there is nothing to record.
// Field updates still apply when nil is returned; only the trail is skipped.
//
// Fields are compared in fixed order: status, priority, visit flag, the
// (amount, currency) composite, description (presence of change only),
// operator assignment, group assignment. Assignment references render as
// display names resolved against the directories.
func BuildChange(prev, next domain.TicketSnapshot, note string, media MediaSet, resolver *assignment.Resolver, author Author, at time.Time) *domain.Annotation {
	var lines []string
	if prev.Status != next.Status {
		lines = append(lines, changeLine(labelStatus, string(prev.Status), string(next.Status)))
	}
	if prev.Priority != next.Priority {
		lines = append(lines, changeLine(labelPriority, string(prev.Priority), string(next.Priority)))
	}
	if prev.Visit != next.Visit {
		lines = append(lines, changeLine(labelVisit, boolLabel(prev.Visit), boolLabel(next.Visit)))
	}
	if !amountEqual(prev, next) {
		lines = append(lines, changeLine(labelAmount, amountLabel(prev), amountLabel(next)))
	}
	if prev.Description != next.Description {
		// Presence of change only; the trail never embeds rich-text diffs.
		lines = append(lines, fmt.Sprintf("%s: <b>actualizada</b>", labelDescription))
	}
	if !refEqual(prev.AssignedTo, next.AssignedTo) {
		lines = append(lines, changeLine(labelAssignee, resolver.UserLabel(prev.AssignedTo), resolver.UserLabel(next.AssignedTo)))
	}
	if !refEqual(prev.AssignedGroupID, next.AssignedGroupID) {
		lines = append(lines, changeLine(labelGroup, resolver.GroupLabel(prev.AssignedGroupID), resolver.GroupLabel(next.AssignedGroupID)))
	}

	hasNote := !IsEmptyMarkup(note)
	if len(lines) == 0 && !hasNote && media.Empty() {
		return nil
	}

	var b strings.Builder
	if len(lines) > 0 {
		b.WriteString("<p><b>" + headingChanges + "</b></p><ul>")
		for _, line := range lines {
			b.WriteString("<li>" + line + "</li>")
		}
		b.WriteString("</ul>")
	}
	if hasNote {
		b.WriteString("<p><b>" + headingDetail + "</b></p>")
		// The note is editor markup; it is stored verbatim.
		b.WriteString(note)
	}
	if b.Len() == 0 {
		// Media with no text still deserves an entry rather than being
		// silently dropped.
		b.WriteString("<p>" + placeholder + "</p>")
	}

	return &domain.Annotation{
		Text:        b.String(),
		CreatedAt:   at,
		User:        author.Name,
		Avatar:      author.Avatar,
		Attachments: media.Attachments,
		AudioNotes:  media.AudioNotes,
	}
}

// IsEmptyMarkup reports whether note markup carries no content: blank after
// trimming, or one of the canonical empty fragments rich-text editors emit
// for an untouched composer.
func IsEmptyMarkup(note string) bool {
	compact := strings.ToLower(strings.Join(strings.Fields(note), ""))
	switch compact {
	case "", "<p></p>", "<p><br></p>", "<p><br/></p>", "<p>&nbsp;</p>", "<br>", "<br/>":
		return true
	}
	return false
}

func changeLine(label, from, to string) string {
	return fmt.Sprintf("%s: <b>%s</b> → <b>%s</b>", label, html.EscapeString(from), html.EscapeString(to))
}

func boolLabel(v bool) string {
	if v {
		return "Sí"
	}
	return "No"
}

func amountLabel(s domain.TicketSnapshot) string {
	if s.Amount == nil {
		return noAmount
	}
	return strconv.FormatFloat(*s.Amount, 'f', -1, 64) + " " + string(s.AmountCurrency)
}

// amountEqual treats amount and currency as one composite value. Currency
// is irrelevant while no amount is set.
func amountEqual(a, b domain.TicketSnapshot) bool {
	if a.Amount == nil && b.Amount == nil {
		return true
	}
	if (a.Amount == nil) != (b.Amount == nil) {
		return false
	}
	return *a.Amount == *b.Amount && a.AmountCurrency == b.AmountCurrency
}

func refEqual(a, b *string) bool {
	if a == nil && b == nil {
		return true
	}
	if (a == nil) != (b == nil) {
		return false
	}
	return *a == *b
}
