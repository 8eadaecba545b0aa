package httpadapter

import (
	"net/http"

	"github.com/kirillkom/outfit-assistant/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrUnsupportedMedia):
		return http.StatusUnsupportedMediaType
	case domain.IsKind(err, domain.ErrItemNotFound):
		return http.StatusNotFound
	case domain.IsKind(err, domain.ErrOutfitNotFound):
		return http.StatusNotFound
	case domain.IsKind(err, domain.ErrItemReferenced):
		return http.StatusConflict
	case domain.IsKind(err, domain.ErrEmptyCatalog):
		return http.StatusUnprocessableEntity
	case domain.IsKind(err, domain.ErrNoViableOutfit):
		return http.StatusUnprocessableEntity
	case domain.IsKind(err, domain.ErrCompositionFailed):
		return http.StatusBadGateway
	case domain.IsKind(err, domain.ErrTemporary):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}
