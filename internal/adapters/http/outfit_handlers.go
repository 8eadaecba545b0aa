package httpadapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/kirillkom/outfit-assistant/internal/core/domain"
)

func (rt *Router) composeOutfit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Occasion    string `json:"occasion"`
		Preferences string `json:"preferences"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.WrapError(domain.ErrInvalidInput, "compose outfit", fmt.Errorf("invalid json")))
		return
	}

	start := time.Now()
	composition, err := rt.composer.ComposeForWardrobe(r.Context(), req.Occasion, req.Preferences)
	rt.observeComposition(composition, err, time.Since(start))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, composition)
}

func (rt *Router) observeComposition(composition *domain.Composition, err error, duration time.Duration) {
	if rt.metrics == nil {
		return
	}

	rt.metrics.ObserveComposition(serviceName, compositionOutcome(err), duration)
	if composition != nil {
		rt.metrics.ObserveCompositionCatalog(serviceName, composition.CatalogSize, len(composition.DroppedIDs))
	}
}

func compositionOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case domain.IsKind(err, domain.ErrInvalidInput):
		return "invalid"
	case domain.IsKind(err, domain.ErrEmptyCatalog):
		return "empty_catalog"
	case domain.IsKind(err, domain.ErrNoViableOutfit):
		return "no_viable_outfit"
	case domain.IsKind(err, domain.ErrCompositionFailed):
		return "collaborator_failed"
	default:
		return "error"
	}
}

func (rt *Router) saveOutfit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string   `json:"name"`
		Occasion string   `json:"occasion"`
		ItemIDs  []string `json:"item_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.WrapError(domain.ErrInvalidInput, "save outfit", fmt.Errorf("invalid json")))
		return
	}

	outfit, err := rt.saver.Save(r.Context(), req.Name, req.Occasion, req.ItemIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, outfit)
}

func (rt *Router) listOutfits(w http.ResponseWriter, r *http.Request) {
	outfits, err := rt.outfits.ListOutfits(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"outfits": outfits})
}

func (rt *Router) getOutfit(w http.ResponseWriter, r *http.Request) {
	outfit, err := rt.outfits.GetOutfit(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outfit)
}

func (rt *Router) listRequests(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, domain.WrapError(domain.ErrInvalidInput, "list requests", fmt.Errorf("limit must be a positive integer")))
			return
		}
		limit = parsed
	}
	if limit > 200 {
		limit = 200
	}

	records, err := rt.requests.ListRecent(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"requests": records})
}
