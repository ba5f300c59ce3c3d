package services

import (
	"context"
	"log"

	"github.com/disneybound/disneyboundbackend/llm"
	"github.com/disneybound/disneyboundbackend/models"
)

// EnrichmentScheduler hands a character off for detached thumbnail enrichment.
type EnrichmentScheduler interface {
	QueueEnrichment(characterID uint)
}

// SearchResponse is the uniform result of a search request. Errors are
// response content, never propagated to the transport layer.
type SearchResponse struct {
	Error  string                  `json:"error,omitempty"`
	Result *models.CharacterResult `json:"result,omitempty"`
	Query  string                  `json:"query,omitempty"`
	Cached bool                    `json:"cached"`
}

// SearchService glues the cache, the LLM search, and enrichment scheduling
// into the request-level search flow.
type SearchService struct {
	cache    *CharacterCacheService
	searcher llm.CharacterSearcher
	enricher EnrichmentScheduler
}

// NewSearchService creates a new search service
func NewSearchService(cache *CharacterCacheService, searcher llm.CharacterSearcher, enricher EnrichmentScheduler) *SearchService {
	return &SearchService{
		cache:    cache,
		searcher: searcher,
		enricher: enricher,
	}
}

// Search resolves a raw query to a character, from the cache when possible and
// via the LLM otherwise. Thumbnail enrichment is scheduled fire-and-forget and
// never blocks the response.
func (s *SearchService) Search(ctx context.Context, rawQuery string) SearchResponse {
	normalized := NormalizeQuery(rawQuery)
	if normalized == "" {
		return SearchResponse{Error: "Please enter a character name to search."}
	}

	if cached := s.cache.Resolve(normalized); cached != nil {
		s.cache.RememberAlias(cached, normalized)
		if cached.ThumbnailURL == "" {
			s.enricher.QueueEnrichment(cached.ID)
		}
		result := cached.ToResult()
		return SearchResponse{Result: &result, Query: rawQuery, Cached: true}
	}

	// cache miss: the LLM gets the query as typed, not the normalized form
	result, err := s.searcher.SearchCharacter(ctx, rawQuery)
	if err != nil {
		log.Printf("Character search failed for '%s': %v", rawQuery, err)
		return SearchResponse{Error: "Search failed: " + err.Error(), Query: rawQuery}
	}

	if !result.Found {
		return SearchResponse{Result: result, Query: rawQuery, Cached: false}
	}

	character, err := s.cache.Materialize(result, rawQuery)
	if err != nil {
		// the user still gets the LLM result; only the cache write was lost
		log.Printf("Error caching character '%s': %v", result.Name, err)
	} else if character != nil && character.ThumbnailURL == "" {
		s.enricher.QueueEnrichment(character.ID)
	}

	return SearchResponse{Result: result, Query: rawQuery, Cached: false}
}
