package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hazyhaar/recase/pkg/kit"
	"github.com/hazyhaar/recase/pkg/recaser"
)

// NewRouter returns an http.Handler with all recase API routes.
func NewRouter(holder *recaser.Holder, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	wrap := kit.Chain(instrument(logger))
	h := &handler{
		restore:  wrap(restoreEndpoint(holder)),
		classify: wrap(classifyEndpoint(holder)),
		info:     wrap(infoEndpoint(holder)),
	}

	mux.HandleFunc("GET /v1/restore", methodNotAllowed)
	mux.HandleFunc("POST /v1/restore", h.handleRestore)
	mux.HandleFunc("GET /v1/classify/{token}", h.handleClassify)
	mux.HandleFunc("GET /v1/info", h.handleInfo)
	mux.HandleFunc("GET /v1/health", h.handleHealth)

	return cors(mux)
}

type handler struct {
	restore  kit.Endpoint
	classify kit.Endpoint
	info     kit.Endpoint
}

// --- restore ---

type httpRestoreRequest struct {
	Tokens []string `json:"tokens,omitempty"`
	Text   string   `json:"text,omitempty"`
}

func (h *handler) handleRestore(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 256*1024)
	var req httpRestoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	tokens := req.Tokens
	if len(tokens) == 0 && req.Text != "" {
		tokens = strings.Fields(req.Text)
	}

	resp, err := h.restore(kit.WithTransport(r.Context(), "http"), &restoreReq{Tokens: tokens})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- classify ---

func (h *handler) handleClassify(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "missing token")
		return
	}
	resp, err := h.classify(kit.WithTransport(r.Context(), "http"), &classifyReq{Token: token})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- info ---

func (h *handler) handleInfo(w http.ResponseWriter, r *http.Request) {
	resp, err := h.info(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- health ---

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
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

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
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
