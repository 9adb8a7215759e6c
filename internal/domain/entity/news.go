package entity

import "time"

// News is an article shown in the news section of the site.
// Content holds the HTML produced by the admin rich-text editor.
type News struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	ImageURL    string     `json:"image_url"`
	Category    string     `json:"category"`
	Author      string     `json:"author"`
	Published   bool       `json:"published"`
	Featured    bool       `json:"featured"`
	SourceURL   *string    `json:"source_url,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewsFeed is an external RSS/Atom feed whose items are imported as
// unpublished news drafts.
type NewsFeed struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	FeedURL       string     `json:"feed_url"`
	Category      string     `json:"category"`
	Active        bool       `json:"active"`
	LastCrawledAt *time.Time `json:"last_crawled_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
