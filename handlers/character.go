package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/disneybound/disneyboundbackend/models"
	"github.com/disneybound/disneyboundbackend/repository"
	"github.com/disneybound/disneyboundbackend/services"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Error encoding JSON response: %v", err)
		}
	}
}

type CharacterHandler struct {
	SearchService *services.SearchService
	CharacterRepo repository.CharacterRepositoryInterface
}

// Search resolves a character query from the cache or the LLM. The response is
// always 200; validation and search failures are carried in the payload.
func (ch *CharacterHandler) Search(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusOK, services.SearchResponse{Error: "Invalid form body: " + err.Error()})
		return
	}

	query := r.FormValue("q")
	response := ch.SearchService.Search(r.Context(), query)
	writeJSON(w, http.StatusOK, response)
}

// ListCharacters returns all cached characters, most recently updated first,
// plus the distinct set of known categories. An optional ?category= filter
// narrows the character list.
func (ch *CharacterHandler) ListCharacters(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	characters, err := ch.CharacterRepo.ListAll(category)
	if err != nil {
		log.Printf("Error listing characters: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve characters"})
		return
	}
	if characters == nil {
		characters = []models.Character{}
	}

	categories, err := ch.CharacterRepo.ListCategories()
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve categories"})
		return
	}
	if categories == nil {
		categories = []string{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"characters": characters,
		"categories": categories,
	})
}

// GetCharacter returns a single cached character by ID.
func (ch *CharacterHandler) GetCharacter(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "character_id")
	characterID, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid character ID format"})
		return
	}

	character, err := ch.CharacterRepo.GetByID(uint(characterID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Character not found"})
		} else {
			log.Printf("Error getting character %d: %v", characterID, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve character"})
		}
		return
	}

	writeJSON(w, http.StatusOK, character)
}
