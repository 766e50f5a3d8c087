// Package apply holds the page implementations of the apply journey.
package apply

import (
	"context"
	"time"

	"caseflow/internal/form/document"
	"caseflow/internal/form/respond"
	"caseflow/internal/form/validate"
	"caseflow/internal/form/wizard"
	"caseflow/pkg/requestcontext"
)

// CaseResponsibility asks whether case-management responsibility stays with
// the applicant. Pages several steps downstream branch on this answer via a
// cross-page lookup.
type CaseResponsibility struct {
	body wizard.Body
}

func NewCaseResponsibility(_ context.Context, body wizard.Body, _ *document.Document) (wizard.Page, error) {
	return &CaseResponsibility{body: body}, nil
}

func (p *CaseResponsibility) Body() wizard.Body { return p.body }

func (p *CaseResponsibility) Errors() wizard.Errors {
	errs := wizard.Errors{}
	if !validate.OneOf(p.body, "isResponsibilityRetained", "yes", "no") {
		errs["isResponsibilityRetained"] = "You must say whether case-management responsibility is retained"
	}
	return errs
}

func (p *CaseResponsibility) Response() []wizard.QA {
	return []wizard.QA{
		{
			Question: "Is case-management responsibility retained by the applicant?",
			Answer:   respond.YesNo(validate.String(p.body, "isResponsibilityRetained")),
		},
	}
}

func (p *CaseResponsibility) Next() string              { return "board-review" }
func (p *CaseResponsibility) Previous() (string, error) { return "", nil }

// PermissionBoardDateOverride lets central referrers record a board that met
// outside the standard window.
const PermissionBoardDateOverride = "caseflow:board-date:override"

// boardWindowDays is how recent a board decision must be to support a new
// placement request.
const boardWindowDays = 7

// BoardReview records whether the placement board has met and, if so, when.
// The board must have met within the last seven days unless the caller holds
// the override permission.
type BoardReview struct {
	body     wizard.Body
	now      time.Time
	override bool
}

func NewBoardReview(ctx context.Context, body wizard.Body, _ *document.Document) (wizard.Page, error) {
	return &BoardReview{
		body:     body,
		now:      requestcontext.Now(ctx),
		override: requestcontext.HasPermission(ctx, PermissionBoardDateOverride),
	}, nil
}

func (p *BoardReview) Body() wizard.Body { return p.body }

func (p *BoardReview) Errors() wizard.Errors {
	errs := wizard.Errors{}
	if !validate.OneOf(p.body, "hasBoardTakenPlace", "yes", "no") {
		errs["hasBoardTakenPlace"] = "You must say whether the board has taken place"
		return errs
	}
	if validate.String(p.body, "hasBoardTakenPlace") != "yes" {
		return errs
	}

	parts := validate.DatePartsFromBody(p.body, "boardDate")
	if !parts.Complete() {
		errs["boardDate"] = "You must enter the date the board took place"
		return errs
	}
	date, ok := parts.Time()
	if !ok {
		errs["boardDate"] = "The board date must be a real date"
		return errs
	}
	switch {
	case validate.AfterDay(date, p.now):
		errs["boardDate"] = "The board date must not be in the future"
	case !p.override && !validate.WithinLastDays(date, p.now, boardWindowDays):
		errs["boardDate"] = "The board must have taken place within the last 7 days"
	}
	return errs
}

func (p *BoardReview) Response() []wizard.QA {
	answer := validate.String(p.body, "hasBoardTakenPlace")
	response := []wizard.QA{
		{Question: "Has the placement board taken place?", Answer: respond.YesNo(answer)},
	}
	if answer == "yes" {
		dateAnswer := ""
		if date, ok := validate.DatePartsFromBody(p.body, "boardDate").Time(); ok {
			dateAnswer = date.Format("2 January 2006")
		}
		response = append(response, wizard.QA{Question: "When did the board take place?", Answer: dateAnswer})
	}
	return response
}

func (p *BoardReview) Next() string              { return "" }
func (p *BoardReview) Previous() (string, error) { return "case-responsibility", nil }
