package media

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"
)

// fakeClock advances only when told, so wall-clock durations are exact.
type fakeClock struct {
	at time.Time
}

func (c *fakeClock) now() time.Time {
	return c.at
}

func (c *fakeClock) advance(d time.Duration) {
	c.at = c.at.Add(d)
}

func newTestCapture(buffer *DraftBuffer) (*CaptureSession, *fakeClock) {
	clock := &fakeClock{at: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	session := NewCaptureSession(buffer)
	session.now = clock.now
	return session, clock
}

func TestCapture_fullCycle(t *testing.T) {
	buffer := NewDraftBuffer()
	session, clock := newTestCapture(buffer)

	if err := session.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := session.Write([]byte("chunk-1|")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := session.Write([]byte("chunk-2")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	clock.advance(7 * time.Second)

	note, err := session.Stop()
	if err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if note.ID == "" {
		t.Error("note missing random id")
	}
	if note.DurationSeconds != 7 {
		t.Errorf("DurationSeconds = %d, want wall-clock 7", note.DurationSeconds)
	}
	merged, _ := base64.StdEncoding.DecodeString(note.Data)
	if string(merged) != "chunk-1|chunk-2" {
		t.Errorf("merged chunks = %q", merged)
	}
	if session.Recording() {
		t.Error("session should be idle after Stop")
	}

	// The note lands in the draft buffer, not the annotation log.
	if notes := buffer.AudioNotes(); len(notes) != 1 || notes[0].ID != note.ID {
		t.Errorf("buffer notes = %+v, want the captured note", notes)
	}
}

func TestCapture_singleInFlight(t *testing.T) {
	session, _ := newTestCapture(NewDraftBuffer())
	if err := session.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := session.Start(); !errors.Is(err, ErrCaptureInProgress) {
		t.Errorf("second Start() error = %v, want ErrCaptureInProgress", err)
	}
}

func TestCapture_stopWithoutStart(t *testing.T) {
	session, _ := newTestCapture(NewDraftBuffer())
	if _, err := session.Stop(); !errors.Is(err, ErrNoCapture) {
		t.Errorf("Stop() error = %v, want ErrNoCapture", err)
	}
	if err := session.Write([]byte("x")); !errors.Is(err, ErrNoCapture) {
		t.Errorf("Write() error = %v, want ErrNoCapture", err)
	}
}

func TestCapture_abortProducesNoNote(t *testing.T) {
	buffer := NewDraftBuffer()
	session, _ := newTestCapture(buffer)
	if err := session.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := session.Write([]byte("partial")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	session.Abort()
	if session.Recording() {
		t.Error("session should return to idle on abort")
	}
	if len(buffer.AudioNotes()) != 0 {
		t.Error("aborted capture must not produce a note")
	}
	// The cycle can restart cleanly after a device failure.
	if err := session.Start(); err != nil {
		t.Errorf("Start() after abort error = %v", err)
	}
}
