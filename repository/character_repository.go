package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/disneybound/disneyboundbackend/models"
)

// CharacterRepository handles database operations for cached Character entities
type CharacterRepository struct {
	DB *gorm.DB
}

// NewCharacterRepository creates a new instance of CharacterRepository
func NewCharacterRepository(db *gorm.DB) *CharacterRepository {
	return &CharacterRepository{DB: db}
}

// FindByNameCI retrieves a character by exact case-insensitive name match.
// Returns (nil, nil) when no record matches.
func (r *CharacterRepository) FindByNameCI(name string) (*models.Character, error) {
	var character models.Character
	err := r.DB.Where("LOWER(name) = LOWER(?)", name).First(&character).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find character by name '%s': %w", name, err)
	}
	return &character, nil
}

// FindByAlias retrieves the character whose search_queries array contains the
// given normalized query. Uses the GIN index on search_queries.
// Returns (nil, nil) when no record matches.
func (r *CharacterRepository) FindByAlias(normalizedQuery string) (*models.Character, error) {
	var character models.Character
	err := r.DB.Where("search_queries @> ?", pq.StringArray{normalizedQuery}).First(&character).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find character by alias '%s': %w", normalizedQuery, err)
	}
	return &character, nil
}

// Create inserts a new character record in the database
func (r *CharacterRepository) Create(character *models.Character) error {
	now := time.Now().Unix()
	if character.CreatedAt == 0 {
		character.CreatedAt = now
	}
	if character.UpdatedAt == 0 {
		character.UpdatedAt = now
	}

	err := r.DB.Create(character).Error
	if err != nil {
		return fmt.Errorf("failed to create character %s: %w", character.Name, err)
	}
	return nil
}

// AppendAlias adds a normalized query to the character's search_queries array.
// It is idempotent: a query that is already present is left untouched and
// updated_at is not bumped.
func (r *CharacterRepository) AppendAlias(character *models.Character, normalizedQuery string) error {
	if character.HasAlias(normalizedQuery) {
		return nil
	}

	character.SearchQueries = append(character.SearchQueries, normalizedQuery)
	character.UpdatedAt = time.Now().Unix()

	err := r.DB.Model(character).Updates(map[string]interface{}{
		"search_queries": character.SearchQueries,
		"updated_at":     character.UpdatedAt,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to append alias '%s' to character ID %d: %w", normalizedQuery, character.ID, err)
	}
	return nil
}

// SetThumbnail stores the thumbnail URL and its attribution together
func (r *CharacterRepository) SetThumbnail(character *models.Character, url, attribution string) error {
	character.ThumbnailURL = url
	character.ImageAttribution = attribution
	character.UpdatedAt = time.Now().Unix()

	err := r.DB.Model(character).Updates(map[string]interface{}{
		"thumbnail_url":     url,
		"image_attribution": attribution,
		"updated_at":        character.UpdatedAt,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to set thumbnail for character ID %d: %w", character.ID, err)
	}
	return nil
}

// GetByID retrieves a character by its ID
func (r *CharacterRepository) GetByID(id uint) (*models.Character, error) {
	var character models.Character
	err := r.DB.First(&character, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get character by ID %d: %w", id, err)
	}
	return &character, nil
}

// ListAll retrieves all characters ordered by most recently updated,
// optionally filtered by category
func (r *CharacterRepository) ListAll(category string) ([]models.Character, error) {
	var characters []models.Character
	query := r.DB.Order("updated_at DESC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Find(&characters).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	return characters, nil
}

// ListCategories retrieves the distinct set of known categories
func (r *CharacterRepository) ListCategories() ([]string, error) {
	var categories []string
	err := r.DB.Model(&models.Character{}).
		Where("category <> ''").
		Order("category ASC").
		Distinct().
		Pluck("category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
