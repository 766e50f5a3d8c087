package apply

import (
	"context"
	"fmt"

	"caseflow/internal/form/document"
	"caseflow/internal/form/hydrate"
	"caseflow/internal/form/navigate"
	"caseflow/internal/form/respond"
	"caseflow/internal/form/validate"
	"caseflow/internal/form/wizard"
)

// PlacementArrangements captures the expected duration and routes the rest
// of the move-on task by the case-responsibility answer given many steps
// earlier. That upstream answer is a precondition: without it the page makes
// no sense, so construction fails fast rather than degrading.
type PlacementArrangements struct {
	body                   wizard.Body
	responsibilityRetained bool
}

func NewPlacementArrangements(_ context.Context, body wizard.Body, doc *document.Document) (wizard.Page, error) {
	answer, err := hydrate.RequireAnswer(doc, "case-responsibility", "isResponsibilityRetained")
	if err != nil {
		return nil, err
	}
	return &PlacementArrangements{
		body:                   body,
		responsibilityRetained: answer == "yes",
	}, nil
}

func (p *PlacementArrangements) Body() wizard.Body { return p.body }

func (p *PlacementArrangements) Errors() wizard.Errors {
	errs := wizard.Errors{}
	if validate.String(p.body, "expectedDurationWeeks") == "" {
		errs["expectedDurationWeeks"] = "You must enter the expected duration of the placement"
	} else if !validate.IntInRange(p.body, "expectedDurationWeeks", 1, 52) {
		errs["expectedDurationWeeks"] = "The expected duration must be between 1 and 52 weeks"
	}
	return errs
}

func (p *PlacementArrangements) Response() []wizard.QA {
	return []wizard.QA{
		{
			Question: "How many weeks is the placement expected to last?",
			Answer:   validate.String(p.body, "expectedDurationWeeks"),
		},
	}
}

func (p *PlacementArrangements) Next() string {
	return navigate.Resolve("provider-contact",
		navigate.Branch{When: p.responsibilityRetained, To: "applicant-contact"},
	)
}

func (p *PlacementArrangements) Previous() (string, error) { return "", nil }

// ApplicantContact captures who to contact when the applicant retains
// case-management responsibility.
type ApplicantContact struct {
	body wizard.Body
	doc  *document.Document
}

func NewApplicantContact(_ context.Context, body wizard.Body, doc *document.Document) (wizard.Page, error) {
	return &ApplicantContact{body: body, doc: doc}, nil
}

func (p *ApplicantContact) Body() wizard.Body { return p.body }

func (p *ApplicantContact) Errors() wizard.Errors {
	errs := wizard.Errors{}
	validate.Require(errs, p.body, "contactName", "You must enter a contact name")
	email := validate.String(p.body, "contactEmail")
	if email == "" {
		errs["contactEmail"] = "You must enter a contact email address"
	} else if !validate.Email(email) {
		errs["contactEmail"] = "The contact email address must be valid"
	}
	return errs
}

func (p *ApplicantContact) Response() []wizard.QA {
	// The responsibility answer renders here exactly as if it were entered
	// on this page; review documents never reveal which page captured it.
	retained, _ := p.doc.RetrieveString("case-responsibility", "isResponsibilityRetained")
	return []wizard.QA{
		{Question: "Is case-management responsibility retained by the applicant?", Answer: respond.YesNo(retained)},
		{Question: "Contact name", Answer: validate.String(p.body, "contactName")},
		{Question: "Contact email address", Answer: validate.String(p.body, "contactEmail")},
	}
}

func (p *ApplicantContact) Next() string              { return "" }
func (p *ApplicantContact) Previous() (string, error) { return "placement-arrangements", nil }

// ProviderContact captures the supported-housing provider's contact when
// responsibility transfers.
type ProviderContact struct {
	body wizard.Body
}

func NewProviderContact(_ context.Context, body wizard.Body, _ *document.Document) (wizard.Page, error) {
	return &ProviderContact{body: body}, nil
}

func (p *ProviderContact) Body() wizard.Body { return p.body }

func (p *ProviderContact) Errors() wizard.Errors {
	errs := wizard.Errors{}
	validate.Require(errs, p.body, "providerName", "You must enter the provider's name")
	phone := validate.String(p.body, "contactPhone")
	if phone == "" {
		errs["contactPhone"] = "You must enter a contact phone number"
	} else if len(phone) < 10 {
		errs["contactPhone"] = fmt.Sprintf("%q is not a valid phone number", phone)
	}
	return errs
}

func (p *ProviderContact) Response() []wizard.QA {
	return []wizard.QA{
		{Question: "Provider name", Answer: validate.String(p.body, "providerName")},
		{Question: "Contact phone number", Answer: validate.String(p.body, "contactPhone")},
	}
}

func (p *ProviderContact) Next() string              { return "" }
func (p *ProviderContact) Previous() (string, error) { return "placement-arrangements", nil }
