package entity

import "time"

// RadioCategory groups radio programs.
type RadioCategory struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
}

// RadioProgram is a radio show. CategoryID is optional.
type RadioProgram struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Host        string    `json:"host"`
	Schedule    string    `json:"schedule"`
	ImageURL    string    `json:"image_url"`
	CategoryID  *int64    `json:"category_id,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RadioEpisode is one audio file belonging to a RadioProgram.
type RadioEpisode struct {
	ID              int64      `json:"id"`
	ProgramID       int64      `json:"program_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	AudioURL        string     `json:"audio_url"`
	DurationSeconds int        `json:"duration_seconds"`
	EpisodeNumber   int        `json:"episode_number"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
