package services

import (
	"fmt"
	"log"

	"gorm.io/datatypes"

	"github.com/disneybound/disneyboundbackend/models"
	"github.com/disneybound/disneyboundbackend/repository"
)

// CharacterCacheService decides cache hits and materializes LLM search results
// into persisted characters.
type CharacterCacheService struct {
	characterRepo repository.CharacterRepositoryInterface
}

// NewCharacterCacheService creates a new character cache service
func NewCharacterCacheService(characterRepo repository.CharacterRepositoryInterface) *CharacterCacheService {
	return &CharacterCacheService{characterRepo: characterRepo}
}

// Resolve checks the store for a character matching the normalized query.
// Name match is tried first, then alias containment. A nil return is the
// cache-miss signal; lookup errors are logged and treated as misses.
func (s *CharacterCacheService) Resolve(normalizedQuery string) *models.Character {
	character, err := s.characterRepo.FindByNameCI(normalizedQuery)
	if err != nil {
		log.Printf("Error looking up character by name for '%s': %v", normalizedQuery, err)
		return nil
	}
	if character != nil {
		return character
	}

	character, err = s.characterRepo.FindByAlias(normalizedQuery)
	if err != nil {
		log.Printf("Error looking up character by alias for '%s': %v", normalizedQuery, err)
		return nil
	}
	return character
}

// RememberAlias records the normalized query against a resolved character so
// future lookups for it hit the alias index directly. Append failures are
// logged; the resolved character is still good.
func (s *CharacterCacheService) RememberAlias(character *models.Character, normalizedQuery string) {
	if character.HasAlias(normalizedQuery) {
		return
	}
	if err := s.characterRepo.AppendAlias(character, normalizedQuery); err != nil {
		log.Printf("Error recording alias '%s' for character ID %d: %v", normalizedQuery, character.ID, err)
	}
}

// Materialize persists an LLM search result. A not-found result is never
// cached and yields (nil, nil). When a character with the same name already
// exists the query is merged into its aliases instead of creating a duplicate.
func (s *CharacterCacheService) Materialize(result *models.CharacterResult, rawQuery string) (*models.Character, error) {
	if result == nil || !result.Found {
		return nil, nil
	}

	normalizedQuery := NormalizeQuery(rawQuery)

	existing, err := s.characterRepo.FindByNameCI(result.Name)
	if err != nil {
		return nil, fmt.Errorf("checking for existing character '%s': %w", result.Name, err)
	}

	if existing != nil {
		if err := s.characterRepo.AppendAlias(existing, normalizedQuery); err != nil {
			return nil, err
		}
		return existing, nil
	}

	colors := make([]models.CharacterColor, 0, len(result.Colors))
	for _, color := range result.Colors {
		colors = append(colors, models.CharacterColor{
			Name:  color.Name,
			Hex:   color.Hex,
			Usage: color.Usage,
		})
	}

	character := &models.Character{
		Name:          result.Name,
		Movie:         result.Movie,
		Category:      result.Category,
		Description:   result.Description,
		Colors:        datatypes.NewJSONType(colors),
		SearchQueries: []string{normalizedQuery},
	}
	if err := s.characterRepo.Create(character); err != nil {
		return nil, err
	}

	return character, nil
}
