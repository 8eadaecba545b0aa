package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/kirillkom/outfit-assistant/internal/core/ports"
	"github.com/kirillkom/outfit-assistant/internal/observability/metrics"
)

const serviceName = "outfit-api"

// Router exposes the wardrobe API: intake, catalog CRUD, composition,
// outfit persistence and the request history.
type Router struct {
	ingestor ports.ItemIngestor
	composer ports.OutfitComposerService
	saver    ports.OutfitSaver
	remover  ports.ItemRemover

	wardrobe ports.WardrobeRepository
	outfits  ports.OutfitRepository
	requests ports.RequestLog
	images   ports.ImageStore

	logger  *slog.Logger
	metrics *metrics.HTTPServerMetrics
}

type RouterDeps struct {
	Ingestor ports.ItemIngestor
	Composer ports.OutfitComposerService
	Saver    ports.OutfitSaver
	Remover  ports.ItemRemover

	Wardrobe ports.WardrobeRepository
	Outfits  ports.OutfitRepository
	Requests ports.RequestLog
	Images   ports.ImageStore

	Logger  *slog.Logger
	Metrics *metrics.HTTPServerMetrics
}

func NewRouter(deps RouterDeps) *Router {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		ingestor: deps.Ingestor,
		composer: deps.Composer,
		saver:    deps.Saver,
		remover:  deps.Remover,
		wardrobe: deps.Wardrobe,
		outfits:  deps.Outfits,
		requests: deps.Requests,
		images:   deps.Images,
		logger:   logger,
		metrics:  deps.Metrics,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", rt.healthz)
	if rt.metrics != nil {
		mux.Handle("GET /metrics", rt.metrics.Handler())
	}

	rt.handle(mux, "POST /v1/items", rt.uploadItem)
	rt.handle(mux, "GET /v1/items", rt.listItems)
	rt.handle(mux, "GET /v1/items/{id}", rt.getItem)
	rt.handle(mux, "GET /v1/items/{id}/image", rt.getItemImage)
	rt.handle(mux, "PUT /v1/items/{id}/tags", rt.updateItemTags)
	rt.handle(mux, "DELETE /v1/items/{id}", rt.deleteItem)

	rt.handle(mux, "POST /v1/outfits/compose", rt.composeOutfit)
	rt.handle(mux, "POST /v1/outfits", rt.saveOutfit)
	rt.handle(mux, "GET /v1/outfits", rt.listOutfits)
	rt.handle(mux, "GET /v1/outfits/{id}", rt.getOutfit)

	rt.handle(mux, "GET /v1/requests", rt.listRequests)

	return requestIDMiddleware(accessLogMiddleware(rt.logger, mux))
}

// handle registers a route and instruments it with the registration
// pattern as the path label, keeping metric cardinality bounded.
func (rt *Router) handle(mux *http.ServeMux, pattern string, handler http.HandlerFunc) {
	if rt.metrics == nil {
		mux.HandleFunc(pattern, handler)
		return
	}
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rt.metrics.StartRequest()
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		handler(recorder, r)

		rt.metrics.FinishRequest(serviceName, r.Method, pattern, recorder.statusCode, time.Since(start))
	})
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
