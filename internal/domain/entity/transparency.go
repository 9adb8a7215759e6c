package entity

import "time"

// Defensoria sections shown on the audience ombudsman page.
var DefensoriaSections = []string{"informes", "codigo-etica", "lineamientos", "contacto", "preguntas", "general"}

// DatasetFormats lists the open-data formats accepted for datasets.
var DatasetFormats = []string{"csv", "json", "xlsx", "xml", "pdf"}

// DefensoriaContent is a block of the audience ombudsman (Defensoría de la
// Audiencia) page.
type DefensoriaContent struct {
	ID           int64     `json:"id"`
	Section      string    `json:"section"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	DocumentURL  string    `json:"document_url"`
	DisplayOrder int       `json:"display_order"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TransparencySection is a page of the transparency portal.
type TransparencySection struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Content      string    `json:"content"`
	DocumentURL  string    `json:"document_url"`
	DisplayOrder int       `json:"display_order"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Document is a downloadable file published in the transparency portal.
type Document struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	FileURL     string     `json:"file_url"`
	FileType    string     `json:"file_type"`
	Category    string     `json:"category"`
	FileSize    int64      `json:"file_size"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Dataset is an open-data file.
type Dataset struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	FileURL     string     `json:"file_url"`
	Format      string     `json:"format"`
	Category    string     `json:"category"`
	FileSize    int64      `json:"file_size"`
	LastUpdated *time.Time `json:"last_updated,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
