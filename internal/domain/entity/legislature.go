package entity

import "time"

// Chamber values accepted for legislators.
const (
	ChamberDeputies = "diputados"
	ChamberSenate   = "senado"
)

// Organ is a governing body of the legislature (boards, commissions, committees).
type Organ struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	OrganType    string    `json:"organ_type"`
	ImageURL     string    `json:"image_url"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ParliamentaryGroup is a party caucus.
type ParliamentaryGroup struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Abbreviation string    `json:"abbreviation"`
	LogoURL      string    `json:"logo_url"`
	Color        string    `json:"color"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Legislator is a member of either chamber.
type Legislator struct {
	ID                   int64     `json:"id"`
	Name                 string    `json:"name"`
	Chamber              string    `json:"chamber"`
	State                string    `json:"state"`
	District             string    `json:"district"`
	ParliamentaryGroupID *int64    `json:"parliamentary_group_id,omitempty"`
	PhotoURL             string    `json:"photo_url"`
	Email                string    `json:"email"`
	Biography            string    `json:"biography"`
	Active               bool      `json:"active"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
