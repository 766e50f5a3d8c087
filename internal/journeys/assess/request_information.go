package assess

import (
	"context"

	"caseflow/internal/form/document"
	"caseflow/internal/form/validate"
	"caseflow/internal/form/wizard"
)

// InformationRequest drafts the request sent back to the applicant when the
// review found the application lacking.
type InformationRequest struct {
	body wizard.Body
}

func NewInformationRequest(_ context.Context, body wizard.Body, _ *document.Document) (wizard.Page, error) {
	return &InformationRequest{body: body}, nil
}

func (p *InformationRequest) Body() wizard.Body { return p.body }

func (p *InformationRequest) Errors() wizard.Errors {
	errs := wizard.Errors{}
	validate.Require(errs, p.body, "requestedInformation",
		"You must describe the information you are requesting")
	return errs
}

func (p *InformationRequest) Response() []wizard.QA {
	return []wizard.QA{
		{
			Question: "What information are you requesting from the applicant?",
			Answer:   validate.String(p.body, "requestedInformation"),
		},
	}
}

func (p *InformationRequest) Next() string { return "" }

// Previous steps back across the task boundary to the page whose answer
// routed the journey here.
func (p *InformationRequest) Previous() (string, error) { return "sufficient-information", nil }
