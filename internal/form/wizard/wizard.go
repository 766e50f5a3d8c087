// Package wizard defines the page/task contract of the multi-step form engine
// and the registries that map slugs to implementations.
//
// Pages are ephemeral: one instance per request, constructed from the filtered
// submitted body and the owning document. Everything a page computes must be a
// pure function of those two inputs (plus the pinned request instant), so that
// re-rendering a review view replays identical answers and navigation.
package wizard

import (
	"context"

	"caseflow/internal/form/document"
)

// Body is a page's filtered field data. Values are JSON-compatible scalars,
// arrays, or records supplied by multi-value form fields.
type Body = map[string]any

// Errors maps a field key to a user-facing validation message.
type Errors = map[string]string

// QA is one rendered question/answer pair.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// JourneyKind identifies a wizard journey (e.g. apply, assess).
type JourneyKind string

// Page is one hydrated form step instance.
//
// Errors, Response, Next and Previous must not mutate the page or the
// document: the engine calls them in a strict hydrate -> validate -> navigate
// order and may replay them when rendering review documents.
type Page interface {
	// Body returns the filtered field data held by this instance.
	Body() Body

	// Errors computes per-field validation messages. Empty means the page
	// may be advanced past.
	Errors() Errors

	// Response projects the page into ordered human-readable Q&A pairs.
	// Order follows the page's declared questions, not body key order.
	Response() []QA

	// Next returns the slug to advance to. "" means end of this task; a
	// slug belonging to another task jumps across task boundaries.
	Next() string

	// Previous returns the slug to step back to. It returns a structural
	// error (dErrors.CodeStructural) when the document does not satisfy
	// the page's entry precondition.
	Previous() (string, error)
}

// NewPageFunc constructs a page instance from the filtered body and the owning
// document. It returns a structural error when the document is structurally
// incomplete for this page to make sense. Constructors read the request
// instant via requestcontext.Now(ctx).
type NewPageFunc func(ctx context.Context, body Body, doc *document.Document) (Page, error)

// FieldRef names a field persisted by another page. Pages declare the
// upstream answers they read so callers can reason about invalidation when an
// upstream answer changes after downstream pages were completed.
type FieldRef struct {
	Page  string
	Field string
}

// PageDescriptor registers a page implementation under a stable slug.
type PageDescriptor struct {
	// Slug is globally unique: it doubles as the URL segment and the
	// document storage key, so a collision would corrupt two unrelated
	// pages' data.
	Slug string

	// Task is the slug of the owning task.
	Task string

	// BodyAllowlist names the only keys a submitted body may carry into
	// validation and persistence.
	BodyAllowlist []string

	// DependsOn declares cross-page reads made by this page's logic.
	DependsOn []FieldRef

	// New constructs the per-request page instance.
	New NewPageFunc
}

// TaskDescriptor groups an ordered list of pages under a task.
//
// The page order is the default traversal only; actual traversal is decided
// at runtime by each page's navigation, so treat the order as a hint.
type TaskDescriptor struct {
	Slug  string
	Title string
	Pages []PageDescriptor

	// JumpEntry marks a task that is not part of the journey's default
	// traversal: it is entered only when another task's navigation jumps
	// into it. Such a task is required for document submission only when
	// the current document actually takes that jump.
	JumpEntry bool
}
