package apply

import (
	"context"

	"caseflow/internal/form/document"
	"caseflow/internal/form/respond"
	"caseflow/internal/form/validate"
	"caseflow/internal/form/wizard"
)

// Placement reasons. "other" opens a free-text detail sub-section.
const (
	ReasonPublicProtection = "publicProtection"
	ReasonResettlement     = "resettlement"
	ReasonOther            = "other"
)

// PlacementReason captures why the placement is requested. The detail
// sub-check runs only when "other" is selected.
type PlacementReason struct {
	body wizard.Body
}

func NewPlacementReason(_ context.Context, body wizard.Body, _ *document.Document) (wizard.Page, error) {
	return &PlacementReason{body: body}, nil
}

func (p *PlacementReason) Body() wizard.Body { return p.body }

func (p *PlacementReason) Errors() wizard.Errors {
	errs := wizard.Errors{}
	if !validate.OneOf(p.body, "reason", ReasonPublicProtection, ReasonResettlement, ReasonOther) {
		errs["reason"] = "You must select a reason for the placement"
		return errs
	}
	if validate.String(p.body, "reason") == ReasonOther {
		validate.Require(errs, p.body, "otherDetail", "You must provide the reason for this placement")
	}
	return errs
}

func (p *PlacementReason) Response() []wizard.QA {
	reason := validate.String(p.body, "reason")
	response := []wizard.QA{
		{Question: "What is the reason for this placement?", Answer: respond.Humanize(reason)},
	}
	if reason == ReasonOther {
		response = append(response, wizard.QA{
			Question: "Other reason",
			Answer:   validate.String(p.body, "otherDetail"),
		})
	}
	return response
}

func (p *PlacementReason) Next() string              { return "" }
func (p *PlacementReason) Previous() (string, error) { return "", nil }
