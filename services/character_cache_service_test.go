package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/disneybound/disneyboundbackend/models"
)

func elsa() *models.Character {
	return &models.Character{
		ID:            1,
		Name:          "Elsa",
		Movie:         "Frozen (2013)",
		Category:      "Princess",
		Description:   "The Snow Queen of Arendelle.",
		SearchQueries: []string{"elsa"},
		Colors: datatypes.NewJSONType([]models.CharacterColor{
			{Name: "Ice Blue", Hex: "#A7D8E8", Usage: "dress"},
		}),
	}
}

func TestResolveByNameBeforeAlias(t *testing.T) {
	byName := elsa()
	byAlias := &models.Character{ID: 2, Name: "Anna", SearchQueries: []string{"elsa"}}
	repo := &mockCharacterRepo{characters: []*models.Character{byAlias, byName}, nextID: 2}
	svc := NewCharacterCacheService(repo)

	got := svc.Resolve("elsa")
	require.NotNil(t, got)
	assert.Equal(t, byName.ID, got.ID)
}

func TestResolveByAlias(t *testing.T) {
	character := elsa()
	character.SearchQueries = []string{"elsa", "frozen queen"}
	repo := &mockCharacterRepo{characters: []*models.Character{character}, nextID: 1}
	svc := NewCharacterCacheService(repo)

	got := svc.Resolve("frozen queen")
	require.NotNil(t, got)
	assert.Equal(t, character.ID, got.ID)
}

func TestResolveMiss(t *testing.T) {
	repo := &mockCharacterRepo{}
	svc := NewCharacterCacheService(repo)

	assert.Nil(t, svc.Resolve("moana"))
}

func TestResolveLookupErrorIsMiss(t *testing.T) {
	repo := &mockCharacterRepo{findNameErr: errors.New("db down")}
	svc := NewCharacterCacheService(repo)

	assert.Nil(t, svc.Resolve("elsa"))
}

func TestMaterializeNotFoundResult(t *testing.T) {
	repo := &mockCharacterRepo{}
	svc := NewCharacterCacheService(repo)

	character, err := svc.Materialize(&models.CharacterResult{Found: false}, "definitely not disney")
	require.NoError(t, err)
	assert.Nil(t, character)
	assert.Empty(t, repo.characters)
}

func TestMaterializeCreatesNewCharacter(t *testing.T) {
	repo := &mockCharacterRepo{}
	svc := NewCharacterCacheService(repo)

	result := &models.CharacterResult{
		Found:       true,
		Name:        "Elsa",
		Movie:       "Frozen (2013)",
		Category:    "Princess",
		Description: "The Snow Queen of Arendelle.",
		Colors: []models.CharacterColor{
			{Name: "Ice Blue", Hex: "#A7D8E8", Usage: "dress"},
		},
	}

	character, err := svc.Materialize(result, "  Frozen QUEEN ")
	require.NoError(t, err)
	require.NotNil(t, character)

	assert.Equal(t, "Elsa", character.Name)
	assert.Equal(t, []string{"frozen queen"}, []string(character.SearchQueries))
	assert.Equal(t, "Frozen (2013)", character.Movie)
	assert.Equal(t, result.Colors, character.Colors.Data())
	assert.NotZero(t, character.CreatedAt)
	assert.NotZero(t, character.UpdatedAt)
	assert.Len(t, repo.characters, 1)
}

func TestMaterializeMergesAliasIntoExisting(t *testing.T) {
	existing := elsa()
	repo := &mockCharacterRepo{characters: []*models.Character{existing}, nextID: 1}
	svc := NewCharacterCacheService(repo)

	result := &models.CharacterResult{Found: true, Name: "elsa", Movie: "Frozen (2013)"}

	character, err := svc.Materialize(result, "Frozen Queen")
	require.NoError(t, err)
	require.NotNil(t, character)

	assert.Equal(t, existing.ID, character.ID)
	assert.Equal(t, []string{"elsa", "frozen queen"}, []string(character.SearchQueries))
	assert.Len(t, repo.characters, 1, "no duplicate record for a case-insensitive name match")
}

func TestMaterializeAliasMergeIsIdempotent(t *testing.T) {
	existing := elsa()
	repo := &mockCharacterRepo{characters: []*models.Character{existing}, nextID: 1}
	svc := NewCharacterCacheService(repo)

	result := &models.CharacterResult{Found: true, Name: "Elsa"}

	for i := 0; i < 2; i++ {
		character, err := svc.Materialize(result, "ELSA")
		require.NoError(t, err)
		require.NotNil(t, character)
	}

	occurrences := 0
	for _, q := range existing.SearchQueries {
		if q == "elsa" {
			occurrences++
		}
	}
	assert.Equal(t, 1, occurrences)
}

func TestMaterializeCreateError(t *testing.T) {
	repo := &mockCharacterRepo{createErr: errors.New("insert failed")}
	svc := NewCharacterCacheService(repo)

	character, err := svc.Materialize(&models.CharacterResult{Found: true, Name: "Moana"}, "moana")
	require.Error(t, err)
	assert.Nil(t, character)
}
