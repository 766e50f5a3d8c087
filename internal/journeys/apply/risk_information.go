package apply

import (
	"context"

	"caseflow/internal/form/document"
	"caseflow/internal/form/hydrate"
	"caseflow/internal/form/respond"
	"caseflow/internal/form/validate"
	"caseflow/internal/form/wizard"
	"caseflow/internal/upstream/personapi"
)

// RoshSectionName is the structured-assessment section shown on the risk
// information page.
const RoshSectionName = "risk-of-serious-harm"

// Risk factors the placement can be asked to manage. Stored as tokens;
// review documents render them humanized.
var riskFactors = []string{
	"riskToStaff",
	"riskToOtherResidents",
	"self_harm",
	"arson",
}

// RiskInformation shows the person's live risk profile and asks the
// applicant to confirm they have reviewed it. The three upstream fetches are
// independent and degrade individually: a failed risk call must not blank
// the assessment section, and vice versa.
type RiskInformation struct {
	body wizard.Body
	doc  *document.Document

	// Hydrated display fields; never persisted, recomputed every request.
	RiskSummary hydrate.Result[personapi.RiskSummary]
	RoshSection hydrate.Result[personapi.AssessmentSection]
	Alerts      hydrate.Result[[]personapi.Alert]
}

func NewRiskInformation(_ context.Context, body wizard.Body, doc *document.Document) (wizard.Page, error) {
	return &RiskInformation{body: body, doc: doc}, nil
}

func (p *RiskInformation) Hydrate(ctx context.Context, deps *hydrate.Deps) error {
	crn := p.doc.CRN
	g := hydrate.NewGatherer(ctx, deps)
	hydrate.Fetch(g, "risk_summary", personapi.StubRiskSummary(crn),
		func(ctx context.Context) (personapi.RiskSummary, error) {
			return deps.Person.GetRiskSummary(ctx, crn)
		}, &p.RiskSummary)
	hydrate.Fetch(g, "assessment_section", personapi.StubAssessmentSection(RoshSectionName),
		func(ctx context.Context) (personapi.AssessmentSection, error) {
			return deps.Person.GetAssessmentSection(ctx, crn, RoshSectionName)
		}, &p.RoshSection)
	hydrate.Fetch(g, "alerts", nil,
		func(ctx context.Context) ([]personapi.Alert, error) {
			return deps.Person.GetAlerts(ctx, crn)
		}, &p.Alerts)
	return g.Wait()
}

func (p *RiskInformation) Body() wizard.Body { return p.body }

func (p *RiskInformation) Errors() wizard.Errors {
	errs := wizard.Errors{}
	if validate.String(p.body, "confirmedRiskInformation") != "yes" {
		errs["confirmedRiskInformation"] = "You must confirm you have reviewed the risk information"
	}

	selected := validate.Strings(p.body, "managedRiskFactors")
	if len(selected) == 0 {
		// Cross-field check reported under one representative key.
		errs["managedRiskFactors"] = "You must select at least one risk factor the placement will manage"
		return errs
	}
	for _, factor := range selected {
		if !knownRiskFactor(factor) {
			errs["managedRiskFactors"] = "You must select risk factors from the list"
			return errs
		}
	}
	return errs
}

func knownRiskFactor(token string) bool {
	for _, f := range riskFactors {
		if f == token {
			return true
		}
	}
	return false
}

func (p *RiskInformation) Response() []wizard.QA {
	return []wizard.QA{
		{
			Question: "I confirm I have reviewed the risk information for this person",
			Answer:   respond.YesNo(validate.String(p.body, "confirmedRiskInformation")),
		},
		{
			Question: "Which risk factors will the placement manage?",
			Answer:   respond.JoinList(validate.Strings(p.body, "managedRiskFactors")),
		},
	}
}

func (p *RiskInformation) Next() string              { return "" }
func (p *RiskInformation) Previous() (string, error) { return "", nil }
