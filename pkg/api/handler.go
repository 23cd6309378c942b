package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hazyhaar/pantry-voice/pkg/kit"
	"github.com/hazyhaar/pantry-voice/pkg/pantry"
	"github.com/hazyhaar/pantry-voice/pkg/voice"
)

// NewRouter returns an http.Handler with all pantry-voice API routes.
func NewRouter(svc *Service, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	wrap := func(op string, e kit.Endpoint) kit.Endpoint {
		return kit.Chain(kit.Logging(logger, op))(e)
	}

	h := &handler{
		svc:        svc,
		resolve:    wrap("voice.resolve", resolveEndpoint(svc)),
		apply:      wrap("voice.apply", applyEndpoint(svc)),
		transcript: wrap("voice.transcript", transcriptEndpoint()),
		listItems:  wrap("items.list", listItemsEndpoint(svc)),
		createItem: wrap("items.create", createItemEndpoint(svc)),
		shopping:   wrap("shopping.list", shoppingListEndpoint(svc)),
		lexicon:    wrap("lexicon.get", lexiconEndpoint(svc)),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/voice/resolve", h.handleResolve)
	mux.HandleFunc("POST /v1/voice/apply", h.handleApply)
	mux.HandleFunc("POST /v1/voice/transcript", h.handleTranscript)
	mux.HandleFunc("GET /v1/items", h.handleListItems)
	mux.HandleFunc("POST /v1/items", h.handleCreateItem)
	mux.HandleFunc("GET /v1/shopping-list", h.handleShoppingList)
	mux.HandleFunc("GET /v1/lexicon", h.handleLexicon)
	mux.HandleFunc("GET /v1/health", h.handleHealth)

	return cors(mux)
}

type handler struct {
	svc        *Service
	resolve    kit.Endpoint
	apply      kit.Endpoint
	transcript kit.Endpoint
	listItems  kit.Endpoint
	createItem kit.Endpoint
	shopping   kit.Endpoint
	lexicon    kit.Endpoint
}

// --- voice ---

func (h *handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	h.serveCommand(w, r, h.resolve)
}

func (h *handler) handleApply(w http.ResponseWriter, r *http.Request) {
	h.serveCommand(w, r, h.apply)
}

func (h *handler) serveCommand(w http.ResponseWriter, r *http.Request, e kit.Endpoint) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024)
	var action voice.CandidateAction
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := e(r.Context(), &resolveReq{Action: action})
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type httpTranscriptRequest struct {
	Transcript string `json:"transcript"`
}

func (h *handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024)
	var req httpTranscriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := h.transcript(r.Context(), &transcriptReq{Transcript: req.Transcript})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- items ---

func (h *handler) handleListItems(w http.ResponseWriter, r *http.Request) {
	resp, err := h.listItems(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type httpCreateItemRequest struct {
	Name        string  `json:"name"`
	Category    any     `json:"category,omitempty"`
	Quantity    float64 `json:"quantity"`
	MinQuantity float64 `json:"min_quantity"`
	Unit        any     `json:"unit,omitempty"`
}

func (h *handler) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024)
	var req httpCreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := h.createItem(r.Context(), &createItemReq{
		Name:        req.Name,
		Category:    req.Category,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
		Unit:        req.Unit,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// --- shopping list / lexicon / health ---

func (h *handler) handleShoppingList(w http.ResponseWriter, r *http.Request) {
	resp, err := h.shopping(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleLexicon(w http.ResponseWriter, r *http.Request) {
	resp, err := h.lexicon(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type healthResponse struct {
	Status string `json:"status"`
	Items  int    `json:"items"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.Store.Count()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Items: count})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// errStatus maps store errors to HTTP codes.
func errStatus(err error) int {
	if errors.Is(err, pantry.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
