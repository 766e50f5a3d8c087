// Package httptransport is the thin HTTP layer over the wizard engine. It
// delegates to the engine without embedding any page or navigation logic so
// transport concerns stay isolated.
package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"caseflow/internal/form/document"
	"caseflow/internal/form/engine"
	"caseflow/internal/form/wizard"
	dErrors "caseflow/pkg/domain-errors"
	"caseflow/pkg/requestcontext"
)

// WizardEngine is the engine surface the handlers consume.
type WizardEngine interface {
	Render(ctx context.Context, docID uuid.UUID, slug string) (*engine.PageView, error)
	Submit(ctx context.Context, docID uuid.UUID, slug string, raw wizard.Body) (*engine.SubmitResult, error)
	CreateDocument(ctx context.Context, kind wizard.JourneyKind, crn string, restricted bool) (*document.Document, error)
	GetDocument(ctx context.Context, docID uuid.UUID) (*document.Document, error)
	TaskList(ctx context.Context, docID uuid.UUID) ([]engine.TaskState, error)
	SubmitDocument(ctx context.Context, docID uuid.UUID) error
}

// Handler serves the wizard endpoints.
type Handler struct {
	engine WizardEngine
	logger *slog.Logger
}

// NewHandler constructs the wizard HTTP handler.
func NewHandler(eng WizardEngine, logger *slog.Logger) *Handler {
	return &Handler{engine: eng, logger: logger}
}

// Register mounts the wizard routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/documents", h.handleCreateDocument)
	r.Get("/documents/{documentID}", h.handleGetDocument)
	r.Get("/documents/{documentID}/tasks", h.handleTaskList)
	r.Post("/documents/{documentID}/submit", h.handleSubmitDocument)
	r.Get("/documents/{documentID}/pages/{pageSlug}", h.handleGetPage)
	r.Put("/documents/{documentID}/pages/{pageSlug}", h.handleSubmitPage)
}

type createDocumentRequest struct {
	JourneyKind string `json:"journey_kind"`
	CRN         string `json:"crn"`
	Restricted  bool   `json:"restricted"`
}

func (h *Handler) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req createDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(ctx, w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.CRN == "" {
		h.writeError(ctx, w, dErrors.New(dErrors.CodeBadRequest, "crn is required"))
		return
	}
	doc, err := h.engine.CreateDocument(ctx, wizard.JourneyKind(req.JourneyKind), req.CRN, req.Restricted)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (h *Handler) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	docID, err := parseDocumentID(r)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	doc, err := h.engine.GetDocument(ctx, docID)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *Handler) handleTaskList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	docID, err := parseDocumentID(r)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	states, err := h.engine.TaskList(ctx, docID)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, states)
}

func (h *Handler) handleSubmitDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	docID, err := parseDocumentID(r)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	if err := h.engine.SubmitDocument(ctx, docID); err != nil {
		h.writeError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGetPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	docID, err := parseDocumentID(r)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	view, err := h.engine.Render(ctx, docID, chi.URLParam(r, "pageSlug"))
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleSubmitPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	docID, err := parseDocumentID(r)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	var raw wizard.Body
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		h.writeError(ctx, w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	result, err := h.engine.Submit(ctx, docID, chi.URLParam(r, "pageSlug"), raw)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	if len(result.Errors) > 0 {
		// User-correctable: the page re-renders with the errors, nothing
		// was persisted, and nothing is logged as a fault.
		writeJSON(w, http.StatusBadRequest, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func parseDocumentID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "documentID"))
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "document ID must be a UUID")
	}
	return id, nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError translates coded domain errors into HTTP responses. Structural
// errors surface as 403 with their code so the UI can redirect to its
// explanatory page; unexpected errors are logged and masked.
func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := dErrors.ToHTTPStatus(code)
	message := err.Error()
	if code == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, "unexpected error",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		message = "internal server error"
	}
	writeJSON(w, status, errorResponse{Code: string(code), Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
