package assess

import (
	"context"
	"time"

	"caseflow/internal/form/document"
	"caseflow/internal/form/validate"
	"caseflow/internal/form/wizard"
	dErrors "caseflow/pkg/domain-errors"
	"caseflow/pkg/requestcontext"
)

// ArrivalDate captures when the person will arrive at the placement. The
// date must not be in the future; "today" is accepted only with a time of
// day that has already passed. The instant is read once per request, so
// re-validation on resubmission always uses a fresh clock.
type ArrivalDate struct {
	body wizard.Body
	doc  *document.Document
	now  time.Time
}

func NewArrivalDate(ctx context.Context, body wizard.Body, doc *document.Document) (wizard.Page, error) {
	return &ArrivalDate{body: body, doc: doc, now: requestcontext.Now(ctx)}, nil
}

func (p *ArrivalDate) Body() wizard.Body { return p.body }

func (p *ArrivalDate) Errors() wizard.Errors {
	errs := wizard.Errors{}

	parts := validate.DatePartsFromBody(p.body, "arrivalDate")
	if !parts.Complete() {
		errs["arrivalDate"] = "You must enter the date of arrival"
		return errs
	}
	date, ok := parts.Time()
	if !ok {
		errs["arrivalDate"] = "The date of arrival must be a real date"
		return errs
	}

	clock := validate.String(p.body, "arrivalTime")
	if clock != "" && !validate.TimeValid(clock) {
		errs["arrivalTime"] = "The time of arrival must be in 24-hour HH:MM format"
	}

	switch {
	case validate.AfterDay(date, p.now):
		errs["arrivalDate"] = "The date of arrival must not be in the future"
	case validate.SameDay(date, p.now):
		if clock == "" {
			errs["arrivalTime"] = "You must enter the time of arrival for a same-day arrival"
		} else if validate.TimeValid(clock) {
			if at, ok := parts.At(clock); ok && at.After(p.now.UTC()) {
				errs["arrivalTime"] = "The time of arrival must be in the past"
			}
		}
	}
	return errs
}

func (p *ArrivalDate) Response() []wizard.QA {
	parts := validate.DatePartsFromBody(p.body, "arrivalDate")
	dateAnswer := ""
	if date, ok := parts.Time(); ok {
		dateAnswer = date.Format("2 January 2006")
	}
	timeAnswer := validate.String(p.body, "arrivalTime")
	if timeAnswer == "" {
		timeAnswer = "Not provided"
	}
	return []wizard.QA{
		{Question: "What is the date of arrival?", Answer: dateAnswer},
		{Question: "What time will the person arrive?", Answer: timeAnswer},
	}
}

func (p *ArrivalDate) Next() string { return "" }

// Previous refuses entry into the arrival flow for a restricted-access case
// until the assessor has confirmed authorisation upstream. That is a
// precondition violation, not a routing choice, so it is an error rather
// than a slug.
func (p *ArrivalDate) Previous() (string, error) {
	if p.doc.Restricted {
		if confirmed, _ := p.doc.RetrieveString("restricted-access-confirmation", "isAuthorised"); confirmed != "yes" {
			return "", dErrors.New(dErrors.CodeStructural,
				"restricted-access case entered without upstream authorisation confirmation")
		}
		return "restricted-access-confirmation", nil
	}
	return "sufficient-information", nil
}
