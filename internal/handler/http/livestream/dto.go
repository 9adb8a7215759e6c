// Package livestream provides HTTP handlers for the live stream endpoints.
package livestream

import (
	"time"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
)

// DTO is a live stream with the badge text of its status.
type DTO struct {
	ID           int64               `json:"id" example:"1"`
	Title        string              `json:"title" example:"Canal del Congreso 45.1"`
	Description  string              `json:"description"`
	StreamURL    string              `json:"stream_url" example:"https://live.example.mx/canal1/index.m3u8"`
	ThumbnailURL string              `json:"thumbnail_url"`
	Channel      string              `json:"channel" example:"45.1"`
	Status       entity.StreamStatus `json:"status" example:"live"`
	StatusLabel  string              `json:"status_label" example:"EN VIVO"`
	DisplayOrder int                 `json:"display_order"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// ToDTO renders s with its status label.
func ToDTO(s *entity.LiveStream) any {
	return DTO{
		ID:           s.ID,
		Title:        s.Title,
		Description:  s.Description,
		StreamURL:    s.StreamURL,
		ThumbnailURL: s.ThumbnailURL,
		Channel:      s.Channel,
		Status:       s.Status,
		StatusLabel:  s.Status.Label(),
		DisplayOrder: s.DisplayOrder,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
