package services

import (
	"context"
	"log"
	"strings"

	"github.com/disneybound/disneyboundbackend/models"
	"github.com/disneybound/disneyboundbackend/repository"
	"github.com/disneybound/disneyboundbackend/tmdb"
)

// ThumbnailService attaches TMDB profile images to cached characters. All
// failures are absorbed here: the caller only ever sees a boolean.
type ThumbnailService struct {
	characterRepo repository.CharacterRepositoryInterface
	tmdbAPI       tmdb.API
	imageBaseURL  string
	enabled       bool
}

// NewThumbnailService creates a new thumbnail service. Enrichment is disabled
// when no TMDB API key is configured.
func NewThumbnailService(characterRepo repository.CharacterRepositoryInterface, tmdbAPI tmdb.API, imageBaseURL string, apiKeyConfigured bool) *ThumbnailService {
	return &ThumbnailService{
		characterRepo: characterRepo,
		tmdbAPI:       tmdbAPI,
		imageBaseURL:  imageBaseURL,
		enabled:       apiKeyConfigured,
	}
}

// Enrich looks up a thumbnail for the character and persists it together with
// its attribution. Returns true when a thumbnail is attached or already
// present. It never returns an error; failures are logged and degrade to false.
func (s *ThumbnailService) Enrich(ctx context.Context, character *models.Character) bool {
	if !s.enabled {
		log.Printf("TMDB API key not configured, skipping thumbnail fetch")
		return false
	}

	if character.ThumbnailURL != "" {
		// already has a thumbnail
		return true
	}

	// strip a trailing "(2013)" style year suffix for better search recall
	movieName := character.Movie
	if idx := strings.Index(movieName, "("); idx >= 0 {
		movieName = movieName[:idx]
	}
	movieName = strings.TrimSpace(movieName)

	movies, err := s.tmdbAPI.SearchMovies(ctx, movieName)
	if err != nil {
		log.Printf("TMDB API error: %v", err)
		return false
	}
	if len(movies) == 0 {
		log.Printf("No TMDB results for movie: %s", movieName)
		return false
	}

	credits, err := s.tmdbAPI.GetMovieCredits(ctx, movies[0].ID)
	if err != nil {
		log.Printf("TMDB API error: %v", err)
		return false
	}

	characterNameLower := strings.ToLower(character.Name)
	for _, castMember := range credits.Cast {
		castCharacter := strings.ToLower(castMember.Character)
		// loose match in either direction tolerates naming variants like
		// "Elsa" vs "Queen Elsa"
		if strings.Contains(castCharacter, characterNameLower) || strings.Contains(characterNameLower, castCharacter) {
			if castMember.ProfilePath == "" {
				continue
			}
			thumbnailURL := s.imageBaseURL + castMember.ProfilePath
			if err := s.characterRepo.SetThumbnail(character, thumbnailURL, "Image from TMDB"); err != nil {
				log.Printf("Error saving thumbnail for %s: %v", character.Name, err)
				return false
			}
			log.Printf("Found thumbnail for %s", character.Name)
			return true
		}
	}

	log.Printf("Character %s not found in TMDB credits", character.Name)
	return false
}
