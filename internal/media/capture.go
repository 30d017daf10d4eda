package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/ops-console/internal/domain"
)

var (
	// ErrCaptureInProgress rejects a second Start while recording.
	ErrCaptureInProgress = errors.New("audio capture already in progress")
	// ErrNoCapture rejects Write/Stop outside a recording cycle.
	ErrNoCapture = errors.New("no audio capture in progress")
)

// CaptureSession produces one voice memo per recording cycle. The cycle is
// idle → recording → idle; a device failure aborts back to idle without
// producing a note. At most one recording is in flight at a time.
//
// Duration is the wall-clock delta between start and stop, not decoded from
// the encoded media, so it may drift from true playable duration when the
// system pauses.
type CaptureSession struct {
	buffer    *DraftBuffer
	now       func() time.Time
	recording bool
	startedAt time.Time
	chunks    [][]byte
}

// NewCaptureSession wires a capture session to the draft buffer its memos
// land in.
func NewCaptureSession(buffer *DraftBuffer) *CaptureSession {
	return &CaptureSession{buffer: buffer, now: time.Now}
}

// Start begins a recording cycle.
func (c *CaptureSession) Start() error {
	if c.recording {
		return ErrCaptureInProgress
	}
	c.recording = true
	c.startedAt = c.now()
	c.chunks = nil
	return nil
}

// Write collects one chunk of encoded audio from the device.
func (c *CaptureSession) Write(chunk []byte) error {
	if !c.recording {
		return ErrNoCapture
	}
	c.chunks = append(c.chunks, chunk)
	return nil
}

// Stop ends the cycle: chunks are merged into a single resource, the memo
// gets a fresh random id and is appended to the draft buffer.
func (c *CaptureSession) Stop() (domain.AudioNote, error) {
	if !c.recording {
		return domain.AudioNote{}, ErrNoCapture
	}
	stoppedAt := c.now()
	merged := bytes.Join(c.chunks, nil)
	note := domain.AudioNote{
		ID:              uuid.NewString(),
		CreatedAt:       stoppedAt,
		Data:            base64.StdEncoding.EncodeToString(merged),
		DurationSeconds: int(stoppedAt.Sub(c.startedAt).Seconds()),
	}
	c.reset()
	c.buffer.AddAudio(note)
	return note, nil
}

// Abort drops the cycle on permission or device failure. No note is
// produced; the caller surfaces the failure to the operator.
func (c *CaptureSession) Abort() {
	c.reset()
}

// Recording reports whether a cycle is in flight.
func (c *CaptureSession) Recording() bool {
	return c.recording
}

func (c *CaptureSession) reset() {
	c.recording = false
	c.chunks = nil
}
