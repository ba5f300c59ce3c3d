package models

import (
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// CharacterColor is one entry of a character's color palette, stored inside
// the JSONB colors column.
type CharacterColor struct {
	Name  string `json:"name"`
	Hex   string `json:"hex"`
	Usage string `json:"usage"`
}

// Character represents a cached Disney character resolved from an LLM search.
// It corresponds to the 'characters' table.
type Character struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"not null;index" json:"name"`
	Movie       string `gorm:"not null" json:"movie"`
	Category    string `gorm:"not null" json:"category"`
	Description string `gorm:"not null" json:"description"`

	// SearchQueries holds every normalized query that previously resolved to
	// this record. The GIN index backs the containment lookup on the search
	// hot path.
	SearchQueries pq.StringArray `gorm:"type:text[];index:character_queries_gin,type:gin" json:"search_queries"`

	ThumbnailURL     string `json:"thumbnail_url"`
	ImageAttribution string `json:"image_attribution"`

	Colors datatypes.JSONType[[]CharacterColor] `gorm:"type:jsonb" json:"colors"`

	CreatedAt int64 `gorm:"not null" json:"created_at"` // Unix timestamp
	UpdatedAt int64 `gorm:"not null" json:"updated_at"` // Unix timestamp
}

// TableName explicitly sets the table name for GORM.
func (Character) TableName() string {
	return "characters"
}

// HasAlias reports whether the given normalized query is already recorded.
func (c *Character) HasAlias(normalizedQuery string) bool {
	for _, q := range c.SearchQueries {
		if q == normalizedQuery {
			return true
		}
	}
	return false
}

// CharacterResult is the wire shape of a resolved character, matching the
// structure returned by the LLM search.
type CharacterResult struct {
	Found            bool             `json:"found"`
	Name             string           `json:"name"`
	Movie            string           `json:"movie"`
	Category         string           `json:"category"`
	Description      string           `json:"description"`
	Colors           []CharacterColor `json:"colors"`
	ThumbnailURL     string           `json:"thumbnail_url,omitempty"`
	ImageAttribution string           `json:"image_attribution,omitempty"`
}

// ToResult converts a stored character into the search result shape.
func (c *Character) ToResult() CharacterResult {
	return CharacterResult{
		Found:            true,
		Name:             c.Name,
		Movie:            c.Movie,
		Category:         c.Category,
		Description:      c.Description,
		Colors:           c.Colors.Data(),
		ThumbnailURL:     c.ThumbnailURL,
		ImageAttribution: c.ImageAttribution,
	}
}
