package repository

import (
	"github.com/disneybound/disneyboundbackend/models"
)

// CharacterRepositoryInterface defines database operations for cached characters
type CharacterRepositoryInterface interface {
	FindByNameCI(name string) (*models.Character, error)
	FindByAlias(normalizedQuery string) (*models.Character, error)
	Create(character *models.Character) error
	AppendAlias(character *models.Character, normalizedQuery string) error
	SetThumbnail(character *models.Character, url, attribution string) error
	GetByID(id uint) (*models.Character, error)
	ListAll(category string) ([]models.Character, error)
	ListCategories() ([]string, error)
}
