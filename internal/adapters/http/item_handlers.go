package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"

	"github.com/kirillkom/outfit-assistant/internal/core/domain"
)

const maxUploadBytes = 20 << 20

func (rt *Router) uploadItem(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeError(w, domain.WrapError(domain.ErrInvalidInput, "upload", fmt.Errorf("multipart field 'file' is required")))
		return
	}
	defer file.Close()

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		name = fileHeader.Filename
	}

	result, err := rt.ingestor.Upload(r.Context(), name, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		writeError(w, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.ObserveUpload(serviceName, result.TagWarning == "")
	}
	writeJSON(w, http.StatusCreated, result)
}

func (rt *Router) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := rt.wardrobe.ListItems(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (rt *Router) getItem(w http.ResponseWriter, r *http.Request) {
	item, err := rt.wardrobe.GetItem(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (rt *Router) getItemImage(w http.ResponseWriter, r *http.Request) {
	item, err := rt.wardrobe.GetItem(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	reader, err := rt.images.Open(r.Context(), item.ImagePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			writeError(w, domain.WrapError(domain.ErrItemNotFound, "open image", err))
			return
		}
		writeError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", item.MimeType)
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, reader)
}

func (rt *Router) updateItemTags(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tags map[string][]string `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.WrapError(domain.ErrInvalidInput, "update tags", fmt.Errorf("invalid json")))
		return
	}

	tags, err := normalizeTagSet(req.Tags)
	if err != nil {
		writeError(w, err)
		return
	}

	id := r.PathValue("id")
	if err := rt.wardrobe.ReplaceTags(r.Context(), id, tags, domain.TagStatusTagged); err != nil {
		writeError(w, err)
		return
	}

	item, err := rt.wardrobe.GetItem(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (rt *Router) deleteItem(w http.ResponseWriter, r *http.Request) {
	if err := rt.remover.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// normalizeTagSet lowercases dimensions, trims values and rejects any
// dimension outside the fixed vocabulary.
func normalizeTagSet(raw map[string][]string) (domain.TagSet, error) {
	tags := domain.TagSet{}
	for dimension, values := range raw {
		dimension = strings.ToLower(strings.TrimSpace(dimension))
		if !domain.ValidDimension(dimension) {
			return nil, domain.WrapError(domain.ErrInvalidInput, "update tags", fmt.Errorf("unknown dimension %q", dimension))
		}
		cleaned := make([]string, 0, len(values))
		for _, value := range values {
			value = strings.TrimSpace(value)
			if value != "" {
				cleaned = append(cleaned, value)
			}
		}
		if len(cleaned) > 0 {
			tags[dimension] = cleaned
		}
	}
	return tags, nil
}
