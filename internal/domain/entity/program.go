package entity

import "time"

// Program is a television program listed in the programming grid.
type Program struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url"`
	Host         string    `json:"host"`
	Schedule     string    `json:"schedule"`
	Category     string    `json:"category"`
	Active       bool      `json:"active"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
