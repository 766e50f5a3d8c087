package apply

import (
	"context"
	"strings"

	"caseflow/internal/form/document"
	"caseflow/internal/form/hydrate"
	"caseflow/internal/form/validate"
	"caseflow/internal/form/wizard"
	"caseflow/internal/upstream/caseapi"
)

// AttachDocuments lets the applicant select already-uploaded files to include
// with the application. The whole section is optional; an empty selection
// still renders an explicit sentinel so review documents keep a stable key
// set for diffing.
type AttachDocuments struct {
	body wizard.Body
	doc  *document.Document

	// Available is hydrated from the case service; display only.
	Available hydrate.Result[[]caseapi.AttachedFile]
}

func NewAttachDocuments(_ context.Context, body wizard.Body, doc *document.Document) (wizard.Page, error) {
	return &AttachDocuments{body: body, doc: doc}, nil
}

func (p *AttachDocuments) Hydrate(ctx context.Context, deps *hydrate.Deps) error {
	g := hydrate.NewGatherer(ctx, deps)
	hydrate.Fetch(g, "attached_files", nil,
		func(ctx context.Context) ([]caseapi.AttachedFile, error) {
			return deps.Case.GetAttachedFiles(ctx, p.doc.ID)
		}, &p.Available)
	return g.Wait()
}

func (p *AttachDocuments) Body() wizard.Body { return p.body }

// Errors is always empty: attaching documents is optional.
func (p *AttachDocuments) Errors() wizard.Errors {
	return wizard.Errors{}
}

func (p *AttachDocuments) Response() []wizard.QA {
	selected := validate.Strings(p.body, "selectedDocuments")
	if len(selected) == 0 {
		return []wizard.QA{{Question: "N/A", Answer: "No documents attached"}}
	}
	// Comma-joined in selection order; filenames are shown verbatim, not
	// humanized.
	return []wizard.QA{{Question: "Attached documents", Answer: strings.Join(selected, ", ")}}
}

func (p *AttachDocuments) Next() string              { return "" }
func (p *AttachDocuments) Previous() (string, error) { return "", nil }
