// Package assess holds the page implementations of the assess journey.
package assess

import (
	"context"

	"caseflow/internal/form/document"
	"caseflow/internal/form/hydrate"
	"caseflow/internal/form/navigate"
	"caseflow/internal/form/respond"
	"caseflow/internal/form/validate"
	"caseflow/internal/form/wizard"
	"caseflow/internal/upstream/identityapi"
)

// SufficientInformation asks whether the application holds enough detail to
// assess. Answering "no" jumps the journey across task boundaries into the
// request-information task; the rest of the review becomes unnecessary until
// the applicant responds.
type SufficientInformation struct {
	body wizard.Body
	doc  *document.Document

	// Applicant is the user who created the application; display only.
	Applicant hydrate.Result[identityapi.User]
}

func NewSufficientInformation(_ context.Context, body wizard.Body, doc *document.Document) (wizard.Page, error) {
	return &SufficientInformation{body: body, doc: doc}, nil
}

func (p *SufficientInformation) Hydrate(ctx context.Context, deps *hydrate.Deps) error {
	g := hydrate.NewGatherer(ctx, deps)
	hydrate.Fetch(g, "applicant", identityapi.StubUser(p.doc.CreatedBy),
		func(ctx context.Context) (identityapi.User, error) {
			return deps.Identity.GetUserByID(ctx, p.doc.CreatedBy)
		}, &p.Applicant)
	return g.Wait()
}

func (p *SufficientInformation) Body() wizard.Body { return p.body }

func (p *SufficientInformation) Errors() wizard.Errors {
	errs := wizard.Errors{}
	if !validate.OneOf(p.body, "sufficientInformation", "yes", "no") {
		errs["sufficientInformation"] = "You must say whether there is enough information to assess the application"
		return errs
	}
	if validate.String(p.body, "sufficientInformation") == "no" {
		validate.Require(errs, p.body, "query", "You must specify what additional information is needed")
	}
	return errs
}

func (p *SufficientInformation) Response() []wizard.QA {
	answer := validate.String(p.body, "sufficientInformation")
	response := []wizard.QA{
		{Question: "Is there enough information in the application to make a decision?", Answer: respond.YesNo(answer)},
	}
	if answer == "no" {
		response = append(response, wizard.QA{
			Question: "What additional information is needed?",
			Answer:   validate.String(p.body, "query"),
		})
	}
	return response
}

func (p *SufficientInformation) Next() string {
	return navigate.Resolve("",
		navigate.Branch{When: validate.String(p.body, "sufficientInformation") == "no", To: "information-request"},
		navigate.Branch{When: p.doc.Restricted, To: "restricted-access-confirmation"},
	)
}

func (p *SufficientInformation) Previous() (string, error) { return "", nil }

// RestrictedAccessConfirmation gates restricted-access cases: downstream
// pages refuse entry until the assessor confirms authorisation here.
type RestrictedAccessConfirmation struct {
	body wizard.Body
}

func NewRestrictedAccessConfirmation(_ context.Context, body wizard.Body, _ *document.Document) (wizard.Page, error) {
	return &RestrictedAccessConfirmation{body: body}, nil
}

func (p *RestrictedAccessConfirmation) Body() wizard.Body { return p.body }

func (p *RestrictedAccessConfirmation) Errors() wizard.Errors {
	errs := wizard.Errors{}
	if validate.String(p.body, "isAuthorised") != "yes" {
		errs["isAuthorised"] = "You must confirm you are authorised to assess this restricted case"
	}
	return errs
}

func (p *RestrictedAccessConfirmation) Response() []wizard.QA {
	return []wizard.QA{
		{
			Question: "I confirm I am authorised to assess this restricted-access case",
			Answer:   respond.YesNo(validate.String(p.body, "isAuthorised")),
		},
	}
}

func (p *RestrictedAccessConfirmation) Next() string              { return "" }
func (p *RestrictedAccessConfirmation) Previous() (string, error) { return "sufficient-information", nil }
