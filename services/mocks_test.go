package services

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/disneybound/disneyboundbackend/models"
	"github.com/disneybound/disneyboundbackend/tmdb"
)

// mockCharacterRepo is an in-memory CharacterRepositoryInterface.
type mockCharacterRepo struct {
	characters []*models.Character
	nextID     uint

	findNameErr  error
	findAliasErr error
	createErr    error
	appendErr    error
	thumbErr     error

	appendCalls int
	thumbCalls  int
}

func (m *mockCharacterRepo) FindByNameCI(name string) (*models.Character, error) {
	if m.findNameErr != nil {
		return nil, m.findNameErr
	}
	for _, c := range m.characters {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockCharacterRepo) FindByAlias(normalizedQuery string) (*models.Character, error) {
	if m.findAliasErr != nil {
		return nil, m.findAliasErr
	}
	for _, c := range m.characters {
		if c.HasAlias(normalizedQuery) {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockCharacterRepo) Create(character *models.Character) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	character.ID = m.nextID
	now := time.Now().Unix()
	if character.CreatedAt == 0 {
		character.CreatedAt = now
	}
	if character.UpdatedAt == 0 {
		character.UpdatedAt = now
	}
	m.characters = append(m.characters, character)
	return nil
}

func (m *mockCharacterRepo) AppendAlias(character *models.Character, normalizedQuery string) error {
	m.appendCalls++
	if m.appendErr != nil {
		return m.appendErr
	}
	if character.HasAlias(normalizedQuery) {
		return nil
	}
	character.SearchQueries = append(character.SearchQueries, normalizedQuery)
	character.UpdatedAt = time.Now().Unix()
	return nil
}

func (m *mockCharacterRepo) SetThumbnail(character *models.Character, url, attribution string) error {
	m.thumbCalls++
	if m.thumbErr != nil {
		return m.thumbErr
	}
	character.ThumbnailURL = url
	character.ImageAttribution = attribution
	character.UpdatedAt = time.Now().Unix()
	return nil
}

func (m *mockCharacterRepo) GetByID(id uint) (*models.Character, error) {
	for _, c := range m.characters {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCharacterRepo) ListAll(category string) ([]models.Character, error) {
	var out []models.Character
	for _, c := range m.characters {
		if category == "" || c.Category == category {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockCharacterRepo) ListCategories() ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, c := range m.characters {
		if c.Category != "" && !seen[c.Category] {
			seen[c.Category] = true
			out = append(out, c.Category)
		}
	}
	return out, nil
}

// mockSearcher is a canned llm.CharacterSearcher that counts invocations.
type mockSearcher struct {
	result *models.CharacterResult
	err    error
	calls  int
}

func (m *mockSearcher) SearchCharacter(ctx context.Context, query string) (*models.CharacterResult, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// mockScheduler records enrichment requests.
type mockScheduler struct {
	queued []uint
}

func (m *mockScheduler) QueueEnrichment(characterID uint) {
	m.queued = append(m.queued, characterID)
}

// mockTMDB is a canned tmdb.API that counts network-equivalent calls.
type mockTMDB struct {
	movies     []tmdb.Movie
	credits    *tmdb.Credits
	searchErr  error
	creditsErr error

	searchCalls  int
	creditsCalls int
}

func (m *mockTMDB) SearchMovies(ctx context.Context, query string) ([]tmdb.Movie, error) {
	m.searchCalls++
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.movies, nil
}

func (m *mockTMDB) GetMovieCredits(ctx context.Context, movieID int) (*tmdb.Credits, error) {
	m.creditsCalls++
	if m.creditsErr != nil {
		return nil, m.creditsErr
	}
	return m.credits, nil
}
