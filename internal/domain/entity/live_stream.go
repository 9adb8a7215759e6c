package entity

import (
	"fmt"
	"strings"
	"time"
)

// StreamStatus is the on-air state of a live stream.
type StreamStatus string

const (
	StreamStatusLive       StreamStatus = "live"
	StreamStatusSignalOpen StreamStatus = "signal_open"
	StreamStatusRecess     StreamStatus = "recess"
	StreamStatusOffline    StreamStatus = "offline"
)

var streamStatusLabels = map[StreamStatus]string{
	StreamStatusLive:       "EN VIVO",
	StreamStatusSignalOpen: "SEÑAL ABIERTA",
	StreamStatusRecess:     "EN RECESO",
	StreamStatusOffline:    "FUERA DEL AIRE",
}

// StreamStatuses lists every status in display order.
func StreamStatuses() []StreamStatus {
	return []StreamStatus{StreamStatusLive, StreamStatusSignalOpen, StreamStatusRecess, StreamStatusOffline}
}

// PublicStreamStatuses lists the statuses shown on the public transmissions page.
func PublicStreamStatuses() []StreamStatus {
	return []StreamStatus{StreamStatusLive, StreamStatusRecess, StreamStatusSignalOpen}
}

// ParseStreamStatus converts s into a StreamStatus. Surrounding whitespace and
// letter case are ignored.
func ParseStreamStatus(s string) (StreamStatus, error) {
	status := StreamStatus(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := streamStatusLabels[status]; !ok {
		return "", &ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("status must be one of live, signal_open, recess, offline (got %q)", s),
		}
	}
	return status, nil
}

// Valid reports whether s is a known status.
func (s StreamStatus) Valid() bool {
	_, ok := streamStatusLabels[s]
	return ok
}

// Label returns the badge text shown next to the player.
func (s StreamStatus) Label() string {
	if label, ok := streamStatusLabels[s]; ok {
		return label
	}
	return streamStatusLabels[StreamStatusOffline]
}

// IsPublic reports whether streams in this status appear on the public page.
func (s StreamStatus) IsPublic() bool {
	return s == StreamStatusLive || s == StreamStatusRecess || s == StreamStatusSignalOpen
}

// LiveStream is a TV or radio signal with an HLS playback URL.
type LiveStream struct {
	ID           int64        `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	StreamURL    string       `json:"stream_url"`
	ThumbnailURL string       `json:"thumbnail_url"`
	Channel      string       `json:"channel"`
	Status       StreamStatus `json:"status"`
	DisplayOrder int          `json:"display_order"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// StatusChange describes a status transition applied to a stream.
type StatusChange struct {
	Stream   *LiveStream
	Previous StreamStatus
	Current  StreamStatus
}

// Changed reports whether the status actually moved.
func (c StatusChange) Changed() bool {
	return c.Previous != c.Current
}
