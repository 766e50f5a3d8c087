package apply

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caseflow/internal/form/document"
	"caseflow/internal/form/hydrate"
	"caseflow/internal/form/wizard"
	"caseflow/internal/platform/config"
	"caseflow/internal/upstream/personapi"
	dErrors "caseflow/pkg/domain-errors"
	"caseflow/pkg/requestcontext"
)

func newDocument() *document.Document {
	return document.New("apply", "X320741", "user-1", time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
}

func withAnswer(doc *document.Document, task, page string, body map[string]any) *document.Document {
	if doc.Data[task] == nil {
		doc.Data[task] = map[string]map[string]any{}
	}
	doc.Data[task][page] = body
	return doc
}

func TestCaseResponsibility(t *testing.T) {
	ctx := context.Background()

	page, err := NewCaseResponsibility(ctx, wizard.Body{"isResponsibilityRetained": "yes"}, newDocument())
	require.NoError(t, err)
	assert.Empty(t, page.Errors())
	assert.Equal(t, "board-review", page.Next())

	page, err = NewCaseResponsibility(ctx, wizard.Body{}, newDocument())
	require.NoError(t, err)
	assert.Equal(t,
		"You must say whether case-management responsibility is retained",
		page.Errors()["isResponsibilityRetained"],
	)

	page, err = NewCaseResponsibility(ctx, wizard.Body{"isResponsibilityRetained": "maybe"}, newDocument())
	require.NoError(t, err)
	assert.NotEmpty(t, page.Errors())
}

func TestPlacementReason(t *testing.T) {
	ctx := context.Background()

	t.Run("other requires detail", func(t *testing.T) {
		page, err := NewPlacementReason(ctx, wizard.Body{"reason": ReasonOther}, newDocument())
		require.NoError(t, err)
		assert.Equal(t,
			"You must provide the reason for this placement",
			page.Errors()["otherDetail"],
		)
	})

	t.Run("other with detail passes", func(t *testing.T) {
		page, err := NewPlacementReason(ctx, wizard.Body{
			"reason":      ReasonOther,
			"otherDetail": "Approved premises unavailable",
		}, newDocument())
		require.NoError(t, err)
		assert.Empty(t, page.Errors())

		response := page.Response()
		require.Len(t, response, 2)
		assert.Equal(t, "Other", response[0].Answer)
		assert.Equal(t, "Approved premises unavailable", response[1].Answer)
	})

	t.Run("non-other skips detail check", func(t *testing.T) {
		page, err := NewPlacementReason(ctx, wizard.Body{"reason": ReasonResettlement}, newDocument())
		require.NoError(t, err)
		assert.Empty(t, page.Errors())

		response := page.Response()
		require.Len(t, response, 1)
		assert.Equal(t, "Resettlement", response[0].Answer)
	})

	t.Run("missing reason", func(t *testing.T) {
		page, err := NewPlacementReason(ctx, wizard.Body{}, newDocument())
		require.NoError(t, err)
		assert.Equal(t, "You must select a reason for the placement", page.Errors()["reason"])
	})
}

func TestBoardReview(t *testing.T) {
	ctx := requestcontext.WithTime(context.Background(), time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))

	board := func(t *testing.T, ctx context.Context, body wizard.Body) wizard.Page {
		t.Helper()
		page, err := NewBoardReview(ctx, body, newDocument())
		require.NoError(t, err)
		return page
	}

	t.Run("no skips the date", func(t *testing.T) {
		page := board(t, ctx, wizard.Body{"hasBoardTakenPlace": "no"})
		assert.Empty(t, page.Errors())
		assert.Len(t, page.Response(), 1)
	})

	t.Run("yes requires the date", func(t *testing.T) {
		page := board(t, ctx, wizard.Body{"hasBoardTakenPlace": "yes"})
		assert.Equal(t, "You must enter the date the board took place", page.Errors()["boardDate"])
	})

	t.Run("date must be real", func(t *testing.T) {
		page := board(t, ctx, wizard.Body{
			"hasBoardTakenPlace": "yes",
			"boardDate-day":      "30",
			"boardDate-month":    "2",
			"boardDate-year":     "2026",
		})
		assert.Equal(t, "The board date must be a real date", page.Errors()["boardDate"])
	})

	t.Run("date must not be in the future", func(t *testing.T) {
		page := board(t, ctx, wizard.Body{
			"hasBoardTakenPlace": "yes",
			"boardDate-day":      "15",
			"boardDate-month":    "3",
			"boardDate-year":     "2026",
		})
		assert.Equal(t, "The board date must not be in the future", page.Errors()["boardDate"])
	})

	t.Run("recent board passes", func(t *testing.T) {
		page := board(t, ctx, wizard.Body{
			"hasBoardTakenPlace": "yes",
			"boardDate-day":      "10",
			"boardDate-month":    "3",
			"boardDate-year":     "2026",
		})
		assert.Empty(t, page.Errors())

		response := page.Response()
		require.Len(t, response, 2)
		assert.Equal(t, "10 March 2026", response[1].Answer)
	})

	t.Run("stale board rejected without the override", func(t *testing.T) {
		page := board(t, ctx, wizard.Body{
			"hasBoardTakenPlace": "yes",
			"boardDate-day":      "1",
			"boardDate-month":    "3",
			"boardDate-year":     "2026",
		})
		assert.Equal(t, "The board must have taken place within the last 7 days", page.Errors()["boardDate"])
	})

	t.Run("override permission accepts a stale board", func(t *testing.T) {
		overrideCtx := requestcontext.WithPermissions(ctx, []string{PermissionBoardDateOverride})
		page := board(t, overrideCtx, wizard.Body{
			"hasBoardTakenPlace": "yes",
			"boardDate-day":      "1",
			"boardDate-month":    "3",
			"boardDate-year":     "2026",
		})
		assert.Empty(t, page.Errors())
	})
}

type stubPersonService struct {
	summary personapi.RiskSummary
	section personapi.AssessmentSection
	alerts  []personapi.Alert
	err     error
}

func (s stubPersonService) GetRiskSummary(context.Context, string) (personapi.RiskSummary, error) {
	return s.summary, s.err
}

func (s stubPersonService) GetAssessmentSection(context.Context, string, string, ...string) (personapi.AssessmentSection, error) {
	return s.section, s.err
}

func (s stubPersonService) GetAlerts(context.Context, string) ([]personapi.Alert, error) {
	return s.alerts, s.err
}

func testDeps(person hydrate.PersonService) *hydrate.Deps {
	return &hydrate.Deps{
		Person: person,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestRiskInformationHydrates(t *testing.T) {
	ctx := context.Background()
	page, err := NewRiskInformation(ctx, wizard.Body{
		"confirmedRiskInformation": "yes",
		"managedRiskFactors":       []any{"self_harm"},
	}, newDocument())
	require.NoError(t, err)

	risk := page.(*RiskInformation)
	require.NoError(t, risk.Hydrate(ctx, testDeps(stubPersonService{
		summary: personapi.RiskSummary{CRN: "X320741", OverallRisk: "high"},
		section: personapi.AssessmentSection{Name: RoshSectionName},
		alerts:  []personapi.Alert{{Type: "HA1", Description: "Self harm"}},
	})))

	assert.True(t, risk.RiskSummary.Succeeded())
	assert.Equal(t, "high", risk.RiskSummary.Value.OverallRisk)
	assert.True(t, risk.RoshSection.Succeeded())
	assert.Len(t, risk.Alerts.Value, 1)
	assert.Empty(t, risk.Errors())
}

func TestRiskInformationDegradesToStubs(t *testing.T) {
	ctx := context.Background()
	page, err := NewRiskInformation(ctx, wizard.Body{}, newDocument())
	require.NoError(t, err)

	risk := page.(*RiskInformation)
	require.NoError(t, risk.Hydrate(ctx, testDeps(stubPersonService{
		err: dErrors.New(dErrors.CodeUpstreamFailure, "person-api unreachable"),
	})))

	assert.Equal(t, hydrate.OutcomeFailure, risk.RiskSummary.Outcome)
	assert.Equal(t, personapi.StubRiskSummary("X320741"), risk.RiskSummary.Value)
	assert.Equal(t, hydrate.OutcomeFailure, risk.RoshSection.Outcome)
	// Validation still runs against the body alone.
	assert.NotEmpty(t, risk.Errors())
}

func TestRiskInformationFactors(t *testing.T) {
	ctx := context.Background()

	t.Run("at least one factor required", func(t *testing.T) {
		page, err := NewRiskInformation(ctx, wizard.Body{"confirmedRiskInformation": "yes"}, newDocument())
		require.NoError(t, err)
		assert.Equal(t,
			"You must select at least one risk factor the placement will manage",
			page.Errors()["managedRiskFactors"],
		)
	})

	t.Run("unknown factor rejected", func(t *testing.T) {
		page, err := NewRiskInformation(ctx, wizard.Body{
			"confirmedRiskInformation": "yes",
			"managedRiskFactors":       []any{"juggling"},
		}, newDocument())
		require.NoError(t, err)
		assert.Equal(t, "You must select risk factors from the list", page.Errors()["managedRiskFactors"])
	})

	t.Run("renders humanized in selection order", func(t *testing.T) {
		page, err := NewRiskInformation(ctx, wizard.Body{
			"confirmedRiskInformation": "yes",
			"managedRiskFactors":       []any{"riskToStaff", "self_harm"},
		}, newDocument())
		require.NoError(t, err)
		assert.Empty(t, page.Errors())

		response := page.Response()
		require.Len(t, response, 2)
		assert.Equal(t, "Which risk factors will the placement manage?", response[1].Question)
		assert.Equal(t, "Risk to staff, Self harm", response[1].Answer)
	})
}

func TestPlacementArrangements(t *testing.T) {
	ctx := context.Background()

	t.Run("requires upstream answer", func(t *testing.T) {
		_, err := NewPlacementArrangements(ctx, wizard.Body{"expectedDurationWeeks": "12"}, newDocument())
		assert.True(t, dErrors.HasCode(err, dErrors.CodeStructural))
	})

	t.Run("routes by responsibility answer", func(t *testing.T) {
		retained := withAnswer(newDocument(), "basic-information", "case-responsibility",
			map[string]any{"isResponsibilityRetained": "yes"})
		page, err := NewPlacementArrangements(ctx, wizard.Body{"expectedDurationWeeks": "12"}, retained)
		require.NoError(t, err)
		assert.Empty(t, page.Errors())
		assert.Equal(t, "applicant-contact", page.Next())

		transferred := withAnswer(newDocument(), "basic-information", "case-responsibility",
			map[string]any{"isResponsibilityRetained": "no"})
		page, err = NewPlacementArrangements(ctx, wizard.Body{"expectedDurationWeeks": "12"}, transferred)
		require.NoError(t, err)
		assert.Equal(t, "provider-contact", page.Next())
	})

	t.Run("duration bounds", func(t *testing.T) {
		doc := withAnswer(newDocument(), "basic-information", "case-responsibility",
			map[string]any{"isResponsibilityRetained": "yes"})

		page, err := NewPlacementArrangements(ctx, wizard.Body{"expectedDurationWeeks": "53"}, doc)
		require.NoError(t, err)
		assert.Equal(t, "The expected duration must be between 1 and 52 weeks", page.Errors()["expectedDurationWeeks"])

		page, err = NewPlacementArrangements(ctx, wizard.Body{}, doc)
		require.NoError(t, err)
		assert.Equal(t, "You must enter the expected duration of the placement", page.Errors()["expectedDurationWeeks"])
	})
}

func TestApplicantContactResponseHidesProvenance(t *testing.T) {
	ctx := context.Background()
	doc := withAnswer(newDocument(), "basic-information", "case-responsibility",
		map[string]any{"isResponsibilityRetained": "yes"})

	page, err := NewApplicantContact(ctx, wizard.Body{
		"contactName":  "Sam Field",
		"contactEmail": "sam.field@justice.example.org",
	}, doc)
	require.NoError(t, err)
	assert.Empty(t, page.Errors())

	response := page.Response()
	require.Len(t, response, 3)
	// The upstream answer reads as if captured on this page.
	assert.Equal(t, "Is case-management responsibility retained by the applicant?", response[0].Question)
	assert.Equal(t, "Yes", response[0].Answer)
	assert.Equal(t, "Sam Field", response[1].Answer)
}

func TestApplicantContactEmailValidation(t *testing.T) {
	ctx := context.Background()

	page, err := NewApplicantContact(ctx, wizard.Body{
		"contactName":  "Sam Field",
		"contactEmail": "not-an-email",
	}, newDocument())
	require.NoError(t, err)
	assert.Equal(t, "The contact email address must be valid", page.Errors()["contactEmail"])
}

func TestAttachDocumentsOptional(t *testing.T) {
	ctx := context.Background()

	page, err := NewAttachDocuments(ctx, wizard.Body{}, newDocument())
	require.NoError(t, err)
	assert.Empty(t, page.Errors())
	assert.Equal(t, []wizard.QA{{Question: "N/A", Answer: "No documents attached"}}, page.Response())

	page, err = NewAttachDocuments(ctx, wizard.Body{
		"selectedDocuments": []any{"licence.pdf", "risk-summary.pdf"},
	}, newDocument())
	require.NoError(t, err)
	assert.Equal(t, "licence.pdf, risk-summary.pdf", page.Response()[0].Answer)
}

func TestTasksFlagGating(t *testing.T) {
	base := Tasks(config.Flags{})
	flagged := Tasks(config.Flags{AttachDocumentsEnabled: true})

	assert.Len(t, flagged, len(base)+1)
	assert.Equal(t, "attach-documents", flagged[len(flagged)-1].Slug)
	for _, task := range base {
		assert.NotEqual(t, "attach-documents", task.Slug)
	}
}

func TestTasksRegisterCleanly(t *testing.T) {
	pages := wizard.NewPageRegistry()
	tasks := wizard.NewTaskRegistry(pages)
	assert.NotPanics(t, func() {
		tasks.AddJourney(Journey, Tasks(config.Flags{AttachDocumentsEnabled: true})...)
	})

	desc, err := pages.Resolve("placement-arrangements")
	require.NoError(t, err)
	assert.Equal(t, "move-on", desc.Task)
	assert.Equal(t, []string{"expectedDurationWeeks"}, desc.BodyAllowlist)
}
