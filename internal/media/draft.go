// Package media holds attachments and voice memos captured but not yet
// committed to a ticket's annotation log.
package media

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/spec-kit/ops-console/internal/domain"
)

// Kind selects which side of the draft a removal targets.
type Kind string

const (
	KindAttachment Kind = "attachment"
	KindAudio      Kind = "audio"
)

// FileInput is one file handed to the draft. ContentType may be empty, in
// which case the payload is sniffed. The caller owns the reader and any
// preview resources derived from it.
type FileInput struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

// DraftBuffer accumulates media since the last successful commit. It is
// created empty per view session and either flushed into the next
// annotation or discarded on navigation away.
type DraftBuffer struct {
	mu          sync.Mutex
	attachments []domain.Attachment
	audioNotes  []domain.AudioNote
}

// NewDraftBuffer returns an empty buffer.
func NewDraftBuffer() *DraftBuffer {
	return &DraftBuffer{}
}

// AddAttachments reads each file into an inline data reference. Files are
// read concurrently; a failure surfaces in the joined error but does not
// roll back files that read successfully.
func (b *DraftBuffer) AddAttachments(ctx context.Context, files []FileInput) error {
	results := make([]*domain.Attachment, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(i int, file FileInput) {
			defer wg.Done()
			att, err := readAttachment(ctx, file)
			if err != nil {
				errs[i] = fmt.Errorf("read %q: %w", file.Name, err)
				return
			}
			results[i] = att
		}(i, file)
	}
	wg.Wait()

	b.mu.Lock()
	for _, att := range results {
		if att != nil {
			b.attachments = append(b.attachments, *att)
		}
	}
	b.mu.Unlock()

	return errors.Join(errs...)
}

// AddAudio appends a captured voice memo.
func (b *DraftBuffer) AddAudio(note domain.AudioNote) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.audioNotes = append(b.audioNotes, note)
}

// Remove drops the draft entry of the given kind and id. Unknown ids are
// ignored.
func (b *DraftBuffer) Remove(kind Kind, id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch kind {
	case KindAttachment:
		for i := range b.attachments {
			if b.attachments[i].ID == id {
				b.attachments = append(b.attachments[:i], b.attachments[i+1:]...)
				return
			}
		}
	case KindAudio:
		for i := range b.audioNotes {
			if b.audioNotes[i].ID == id {
				b.audioNotes = append(b.audioNotes[:i], b.audioNotes[i+1:]...)
				return
			}
		}
	}
}

// Attachments returns a copy of the pending attachments.
func (b *DraftBuffer) Attachments() []domain.Attachment {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]domain.Attachment, len(b.attachments))
	copy(out, b.attachments)
	return out
}

// AudioNotes returns a copy of the pending voice memos.
func (b *DraftBuffer) AudioNotes() []domain.AudioNote {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]domain.AudioNote, len(b.audioNotes))
	copy(out, b.audioNotes)
	return out
}

// Empty reports whether nothing is pending.
func (b *DraftBuffer) Empty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.attachments) == 0 && len(b.audioNotes) == 0
}

// Flush returns the buffered contents and clears the buffer.
func (b *DraftBuffer) Flush() ([]domain.Attachment, []domain.AudioNote) {
	b.mu.Lock()
	defer b.mu.Unlock()
	attachments := b.attachments
	audioNotes := b.audioNotes
	b.attachments = nil
	b.audioNotes = nil
	return attachments, audioNotes
}

func readAttachment(ctx context.Context, file FileInput) (*domain.Attachment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if file.Reader == nil {
		return nil, errors.New("no content")
	}
	payload, err := io.ReadAll(file.Reader)
	if err != nil {
		return nil, err
	}
	contentType := file.ContentType
	if contentType == "" {
		contentType = mimetype.Detect(payload).String()
	}
	return &domain.Attachment{
		ID:        uuid.NewString(),
		Name:      file.Name,
		SizeBytes: int64(len(payload)),
		MimeType:  contentType,
		Data:      base64.StdEncoding.EncodeToString(payload),
	}, nil
}
