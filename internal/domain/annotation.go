package domain

import "time"

// Annotation is one audit/timeline entry on a ticket. The CreatedAt
// timestamp doubles as the entry's identity key: there is no separate id,
// and timestamps are unique within one ticket's log.
type Annotation struct {
	Text        string       `json:"text"`
	CreatedAt   time.Time    `json:"createdAt"`
	User        string       `json:"user"`
	Avatar      string       `json:"avatar,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
	AudioNotes  []AudioNote  `json:"audioNotes,omitempty"`
}

// Attachment is a file attached to an annotation. Either Data holds an
// inline base64 payload or URL points at remote storage.
type Attachment struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SizeBytes int64  `json:"size"`
	MimeType  string `json:"mimeType"`
	Data      string `json:"data,omitempty"`
	URL       string `json:"url,omitempty"`
}

// AudioNote is a voice memo attached to an annotation. DurationSeconds is
// wall-clock measured at capture time, not decoded from the media, so it
// may drift from the true playable duration.
type AudioNote struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"createdAt"`
	Data            string    `json:"data,omitempty"`
	URL             string    `json:"url,omitempty"`
	DurationSeconds int       `json:"durationSeconds"`
}
