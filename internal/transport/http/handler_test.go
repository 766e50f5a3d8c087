package httptransport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"caseflow/internal/form/document"
	"caseflow/internal/form/engine"
	"caseflow/internal/form/wizard"
	"caseflow/internal/transport/http/mocks"
	dErrors "caseflow/pkg/domain-errors"
)

//go:generate mockgen -source=handler.go -destination=mocks/engine_mocks.go -package=mocks WizardEngine
type WizardHandlerSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *WizardHandlerSuite) SetupSuite() {
	s.ctx = context.Background()
}

func TestWizardHandlerSuite(t *testing.T) {
	suite.Run(t, new(WizardHandlerSuite))
}

func newTestHandler(t *testing.T) (chi.Router, *mocks.MockWizardEngine) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockEngine := mocks.NewMockWizardEngine(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := NewHandler(mockEngine, logger)
	r := chi.NewRouter()
	handler.Register(r)
	return r, mockEngine
}

func (s *WizardHandlerSuite) TestHandleCreateDocument() {
	r, mockEngine := newTestHandler(s.T())
	docID := uuid.New()
	mockEngine.EXPECT().CreateDocument(
		gomock.Any(),
		wizard.JourneyKind("apply"),
		"X320741",
		false,
	).Return(&document.Document{
		ID:          docID,
		JourneyKind: "apply",
		CRN:         "X320741",
		Status:      document.StatusStarted,
	}, nil)

	body, err := json.Marshal(createDocumentRequest{JourneyKind: "apply", CRN: "X320741"})
	require.NoError(s.T(), err)

	req := httptest.NewRequest(http.MethodPost, "/documents", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusCreated, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), docID.String(), resp["id"])
	assert.Equal(s.T(), "started", resp["status"])
}

func (s *WizardHandlerSuite) TestHandleCreateDocument_MissingCRN() {
	r, _ := newTestHandler(s.T())

	req := httptest.NewRequest(http.MethodPost, "/documents", bytes.NewReader([]byte(`{"journey_kind":"apply"}`)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *WizardHandlerSuite) TestHandleGetPage() {
	r, mockEngine := newTestHandler(s.T())
	docID := uuid.New()
	mockEngine.EXPECT().Render(gomock.Any(), docID, "placement-reason").Return(&engine.PageView{
		Slug:   "placement-reason",
		Task:   "placement-request",
		Body:   wizard.Body{"reason": "resettlement"},
		Errors: wizard.Errors{},
		Response: []wizard.QA{
			{Question: "Reason", Answer: "Resettlement"},
		},
		Next: "risk-summary",
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/documents/"+docID.String()+"/pages/placement-reason", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var view engine.PageView
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(s.T(), "placement-reason", view.Slug)
	assert.Equal(s.T(), "risk-summary", view.Next)
	assert.Equal(s.T(), "resettlement", view.Body["reason"])
}

func (s *WizardHandlerSuite) TestHandleGetPage_BadDocumentID() {
	r, _ := newTestHandler(s.T())

	req := httptest.NewRequest(http.MethodGet, "/documents/not-a-uuid/pages/placement-reason", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *WizardHandlerSuite) TestHandleSubmitPage_ValidationErrors() {
	r, mockEngine := newTestHandler(s.T())
	docID := uuid.New()
	mockEngine.EXPECT().Submit(
		gomock.Any(), docID, "placement-reason",
		wizard.Body{"reason": "other"},
	).Return(&engine.SubmitResult{
		Errors: wizard.Errors{"otherDetail": "You must provide the reason for this placement"},
	}, nil)

	req := httptest.NewRequest(http.MethodPut,
		"/documents/"+docID.String()+"/pages/placement-reason",
		bytes.NewReader([]byte(`{"reason":"other"}`)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	var result engine.SubmitResult
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(s.T(), "You must provide the reason for this placement", result.Errors["otherDetail"])
	assert.Empty(s.T(), result.Next)
}

func (s *WizardHandlerSuite) TestHandleSubmitPage_Persisted() {
	r, mockEngine := newTestHandler(s.T())
	docID := uuid.New()
	mockEngine.EXPECT().Submit(
		gomock.Any(), docID, "case-responsibility",
		wizard.Body{"isResponsibilityRetained": "yes"},
	).Return(&engine.SubmitResult{Next: "board-review"}, nil)

	req := httptest.NewRequest(http.MethodPut,
		"/documents/"+docID.String()+"/pages/case-responsibility",
		bytes.NewReader([]byte(`{"isResponsibilityRetained":"yes"}`)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var result engine.SubmitResult
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(s.T(), "board-review", result.Next)
}

func (s *WizardHandlerSuite) TestHandleSubmitPage_StructuralError() {
	r, mockEngine := newTestHandler(s.T())
	docID := uuid.New()
	mockEngine.EXPECT().Submit(gomock.Any(), docID, "placement-arrangements", gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeStructural, "case-responsibility has not been answered"))

	req := httptest.NewRequest(http.MethodPut,
		"/documents/"+docID.String()+"/pages/placement-arrangements",
		bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusForbidden, w.Code)
	var resp map[string]string
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), string(dErrors.CodeStructural), resp["code"])
}

func (s *WizardHandlerSuite) TestHandleTaskList() {
	r, mockEngine := newTestHandler(s.T())
	docID := uuid.New()
	mockEngine.EXPECT().TaskList(gomock.Any(), docID).Return([]engine.TaskState{
		{Slug: "basic-information", Title: "Basic information", Complete: true, Required: true},
		{Slug: "placement-request", Title: "Placement request", Complete: false, Required: false},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/documents/"+docID.String()+"/tasks", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var states []engine.TaskState
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &states))
	require.Len(s.T(), states, 2)
	assert.True(s.T(), states[0].Complete)
	assert.True(s.T(), states[0].Required)
	assert.False(s.T(), states[1].Complete)
	assert.False(s.T(), states[1].Required)
}

func (s *WizardHandlerSuite) TestHandleSubmitDocument_Incomplete() {
	r, mockEngine := newTestHandler(s.T())
	docID := uuid.New()
	mockEngine.EXPECT().SubmitDocument(gomock.Any(), docID).
		Return(dErrors.New(dErrors.CodeConflict, `task "move-on" is incomplete; the document cannot be submitted`))

	req := httptest.NewRequest(http.MethodPost, "/documents/"+docID.String()+"/submit", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusConflict, w.Code)
}

func (s *WizardHandlerSuite) TestHandleSubmitDocument() {
	r, mockEngine := newTestHandler(s.T())
	docID := uuid.New()
	mockEngine.EXPECT().SubmitDocument(gomock.Any(), docID).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/documents/"+docID.String()+"/submit", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusNoContent, w.Code)
}

func (s *WizardHandlerSuite) TestWriteError_MasksInternal() {
	r, mockEngine := newTestHandler(s.T())
	docID := uuid.New()
	mockEngine.EXPECT().GetDocument(gomock.Any(), docID).
		Return(nil, dErrors.New(dErrors.CodeInternal, "pool exhausted: secret dsn"))

	req := httptest.NewRequest(http.MethodGet, "/documents/"+docID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusInternalServerError, w.Code)
	var resp map[string]string
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "internal server error", resp["message"])
}
