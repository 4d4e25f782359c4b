// Package httpapi exposes the LegalEase workspace over HTTP for a local
// browser UI. It delegates all orchestration to the workspace; each POST
// triggers one controller invoke and responds with that invoke's outcome.
package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	legalease "github.com/7Nouman/LegalEase-Phase1"
	"github.com/7Nouman/LegalEase-Phase1/analysis"
	"github.com/7Nouman/LegalEase-Phase1/controller"
	"github.com/7Nouman/LegalEase-Phase1/model"
)

// maxUploadBytes caps PDF uploads accepted by the gateway.
const maxUploadBytes = 25 << 20

// Handler provides the HTTP gateway in front of a Workspace.
type Handler struct {
	workspace *legalease.Workspace
	router    chi.Router
}

// New creates a new gateway handler.
func New(ws *legalease.Workspace) *Handler {
	h := &Handler{workspace: ws}
	h.router = h.buildRouter()
	return h
}

// Router returns the HTTP router.
func (h *Handler) Router() chi.Router {
	return h.router
}

func (h *Handler) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/session", h.handleGetSession)
		r.Post("/upload", h.handleUpload)

		// No per-request timeout: an analysis call either resolves or the
		// client goes away, cancelling the request context.
		r.Post("/summary", h.handleSummarize)
		r.Get("/summary", h.handleGetSummary)
		r.Post("/clauses", h.handleExplainClauses)
		r.Get("/clauses", h.handleGetClauses)
		r.Post("/chat", h.handleAsk)
		r.Get("/chat", h.handleGetTranscript)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	return r
}

// --- Request/Response types ---

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

type summaryResponse struct {
	Summary string `json:"summary"`
}

type clausesResponse struct {
	Clauses []model.ClauseAnalysis `json:"clauses"`
}

type stateResponse struct {
	Status  controller.Status `json:"status"`
	Summary string            `json:"summary,omitempty"`
	Error   string            `json:"error,omitempty"`
}

type clausesStateResponse struct {
	Status  controller.Status      `json:"status"`
	Clauses []model.ClauseAnalysis `json:"clauses,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

type transcriptResponse struct {
	Turns []model.Turn `json:"turns"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// --- Handlers ---

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.workspace.Session())
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	done, err := h.workspace.UploadPDF(r.Context(), header.Filename, file)
	if err != nil {
		writeFailure(w, err)
		return
	}

	snap := <-done
	if snap.Status != controller.StatusSucceeded {
		writeFailure(w, snap.Err)
		return
	}
	writeJSON(w, http.StatusCreated, snap.Result)
}

func (h *Handler) handleSummarize(w http.ResponseWriter, r *http.Request) {
	done, err := h.workspace.Summarize(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	snap := <-done
	if snap.Status != controller.StatusSucceeded {
		writeFailure(w, snap.Err)
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{Summary: snap.Result})
}

func (h *Handler) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	snap := h.workspace.SummaryState()
	writeJSON(w, http.StatusOK, stateResponse{
		Status:  snap.Status,
		Summary: snap.Result,
		Error:   noticeOrEmpty(snap.Err),
	})
}

func (h *Handler) handleExplainClauses(w http.ResponseWriter, r *http.Request) {
	done, err := h.workspace.ExplainClauses(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	snap := <-done
	if snap.Status != controller.StatusSucceeded {
		writeFailure(w, snap.Err)
		return
	}
	writeJSON(w, http.StatusOK, clausesResponse{Clauses: snap.Result})
}

func (h *Handler) handleGetClauses(w http.ResponseWriter, r *http.Request) {
	snap := h.workspace.ClausesState()
	writeJSON(w, http.StatusOK, clausesStateResponse{
		Status:  snap.Status,
		Clauses: snap.Result,
		Error:   noticeOrEmpty(snap.Err),
	})
}

func (h *Handler) handleAsk(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	done, err := h.workspace.SubmitQuestion(r.Context(), req.Question)
	if err != nil {
		writeFailure(w, err)
		return
	}
	snap := <-done
	if snap.Status != controller.StatusSucceeded {
		writeFailure(w, snap.Err)
		return
	}
	writeJSON(w, http.StatusOK, askResponse{Answer: snap.Result})
}

func (h *Handler) handleGetTranscript(w http.ResponseWriter, r *http.Request) {
	turns := h.workspace.Transcript()
	if turns == nil {
		turns = []model.Turn{}
	}
	writeJSON(w, http.StatusOK, transcriptResponse{Turns: turns})
}

// --- Helpers ---

// writeFailure maps core errors onto HTTP statuses at this boundary only:
// local validation is the caller's fault, everything else is the upstream
// service's. The notice text is all that leaks out.
func writeFailure(w http.ResponseWriter, err error) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, legalease.Notice(err))
		return
	}
	var aerr *analysis.Error
	if errors.As(err, &aerr) {
		writeError(w, http.StatusBadGateway, legalease.Notice(err))
		return
	}
	writeError(w, http.StatusInternalServerError, legalease.Notice(err))
}

func noticeOrEmpty(err error) string {
	if err == nil {
		return ""
	}
	return legalease.Notice(err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writeJSON encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
