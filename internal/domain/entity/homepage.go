package entity

import "time"

// HomepageConfigID is the primary key of the single homepage_config row.
const HomepageConfigID int64 = 1

// HomepageConfig controls the hero block and which sections the homepage shows.
type HomepageConfig struct {
	HeroTitle        string    `json:"hero_title" yaml:"hero_title"`
	HeroSubtitle     string    `json:"hero_subtitle" yaml:"hero_subtitle"`
	HeroImageURL     string    `json:"hero_image_url" yaml:"hero_image_url"`
	HeroVideoURL     string    `json:"hero_video_url" yaml:"hero_video_url"`
	FeaturedStreamID *int64    `json:"featured_stream_id,omitempty" yaml:"featured_stream_id,omitempty"`
	ShowNews         bool      `json:"show_news" yaml:"show_news"`
	ShowStreams      bool      `json:"show_streams" yaml:"show_streams"`
	ShowPrograms     bool      `json:"show_programs" yaml:"show_programs"`
	ShowRadio        bool      `json:"show_radio" yaml:"show_radio"`
	NewsLimit        int       `json:"news_limit" yaml:"news_limit"`
	UpdatedAt        time.Time `json:"updated_at" yaml:"-"`
}
