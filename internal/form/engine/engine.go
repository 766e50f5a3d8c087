// Package engine drives the per-request page pipeline: resolve -> filter ->
// hydrate -> validate -> persist -> navigate. The three phases after
// hydration are strictly sequential even though hydration's internal calls
// run concurrently.
package engine

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"caseflow/internal/form/document"
	"caseflow/internal/form/document/eventlog"
	"caseflow/internal/form/hydrate"
	"caseflow/internal/form/wizard"
	"caseflow/internal/platform/events"
	"caseflow/internal/platform/metrics"
	dErrors "caseflow/pkg/domain-errors"
	"caseflow/pkg/requestcontext"
)

// SubmissionLog records successful page persists for audit.
type SubmissionLog interface {
	Append(ctx context.Context, e eventlog.Entry) error
}

// Engine wires the registries, the document store and the hydration
// dependencies into the request pipeline.
type Engine struct {
	pages   *wizard.PageRegistry
	tasks   *wizard.TaskRegistry
	docs    document.Store
	deps    *hydrate.Deps
	events  *events.Publisher
	sublog  SubmissionLog
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// New constructs the engine. events and sublog may be nil when Kafka or the
// submission log are not configured.
func New(
	pages *wizard.PageRegistry,
	tasks *wizard.TaskRegistry,
	docs document.Store,
	deps *hydrate.Deps,
	publisher *events.Publisher,
	sublog SubmissionLog,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Engine {
	return &Engine{
		pages:   pages,
		tasks:   tasks,
		docs:    docs,
		deps:    deps,
		events:  publisher,
		sublog:  sublog,
		logger:  logger,
		metrics: m,
		tracer:  otel.Tracer("caseflow/form/engine"),
	}
}

// PageView is the read surface handed to the rendering layer.
type PageView struct {
	Slug     string        `json:"slug"`
	Task     string        `json:"task"`
	Body     wizard.Body   `json:"body"`
	Errors   wizard.Errors `json:"errors"`
	Response []wizard.QA   `json:"response"`
	Next     string        `json:"next"`
	Previous string        `json:"previous"`
}

// SubmitResult is the outcome of a POST. Errors non-empty means nothing was
// persisted and the page should re-render with them.
type SubmitResult struct {
	Errors wizard.Errors `json:"errors"`
	Next   string        `json:"next"`
}

// initialize builds a page instance from a raw body: allowlist filter,
// construct, and (when the page needs external data and withExternal is set)
// hydrate. Construction fails fast with a structural error when the document
// is structurally incomplete for the page.
func (e *Engine) initialize(ctx context.Context, doc *document.Document, slug string, raw wizard.Body, withExternal bool) (wizard.Page, wizard.PageDescriptor, error) {
	desc, err := e.pages.Resolve(slug)
	if err != nil {
		return nil, wizard.PageDescriptor{}, err
	}
	body, err := e.pages.FilterBody(slug, raw)
	if err != nil {
		return nil, desc, err
	}
	page, err := desc.New(ctx, body, doc)
	if err != nil {
		return nil, desc, err
	}
	if h, ok := page.(hydrate.Hydrator); ok && withExternal {
		if err := h.Hydrate(ctx, e.deps); err != nil {
			return nil, desc, err
		}
	}
	return page, desc, nil
}

// Render builds the full page view for a GET, hydrating from the stored body.
func (e *Engine) Render(ctx context.Context, docID uuid.UUID, slug string) (*PageView, error) {
	doc, err := e.docs.Get(ctx, docID)
	if err != nil {
		return nil, err
	}
	desc, err := e.pages.Resolve(slug)
	if err != nil {
		return nil, err
	}
	stored, _ := doc.PageBody(desc.Task, slug)
	page, _, err := e.initialize(ctx, doc, slug, stored, true)
	if err != nil {
		return nil, err
	}

	previous, err := page.Previous()
	if err != nil {
		return nil, err
	}
	return &PageView{
		Slug:     slug,
		Task:     desc.Task,
		Body:     page.Body(),
		Errors:   page.Errors(),
		Response: page.Response(),
		Next:     page.Next(),
		Previous: previous,
	}, nil
}

// Submit runs the POST pipeline. Either validation passes and the filtered
// body is persisted as one atomic data[task][page] replace, or nothing is
// persisted and the errors are returned.
func (e *Engine) Submit(ctx context.Context, docID uuid.UUID, slug string, raw wizard.Body) (*SubmitResult, error) {
	ctx, span := e.tracer.Start(ctx, "engine.submit")
	defer span.End()

	doc, err := e.docs.Get(ctx, docID)
	if err != nil {
		return nil, err
	}
	page, desc, err := e.initialize(ctx, doc, slug, raw, true)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeStructural) {
			e.metrics.IncrementSubmission(desc.Task, "rejected")
		}
		return nil, err
	}

	if errs := page.Errors(); len(errs) > 0 {
		e.metrics.IncrementSubmission(desc.Task, "invalid")
		return &SubmitResult{Errors: errs}, nil
	}

	if err := e.docs.SaveTaskPageData(ctx, docID, desc.Task, slug, page.Body()); err != nil {
		return nil, err
	}
	e.metrics.IncrementSubmission(desc.Task, "persisted")
	e.recordSubmission(ctx, doc, desc)

	return &SubmitResult{Next: page.Next()}, nil
}

func (e *Engine) recordSubmission(ctx context.Context, doc *document.Document, desc wizard.PageDescriptor) {
	actor := requestcontext.UserID(ctx)
	at := requestcontext.Now(ctx)

	e.events.PageSubmitted(ctx, events.PageSubmitted{
		DocumentID:  doc.ID.String(),
		JourneyKind: doc.JourneyKind,
		TaskSlug:    desc.Task,
		PageSlug:    desc.Slug,
		ActorID:     actor,
		OccurredAt:  at,
	})
	if e.sublog != nil {
		entry := eventlog.Entry{
			DocumentID: doc.ID,
			TaskSlug:   desc.Task,
			PageSlug:   desc.Slug,
			ActorID:    actor,
			OccurredAt: at,
		}
		if err := e.sublog.Append(ctx, entry); err != nil {
			e.logger.WarnContext(ctx, "append submission log failed",
				"document_id", doc.ID,
				"page", desc.Slug,
				"error", err,
			)
		}
	}
}

// CreateDocument starts a new wizard document for a case. The journey kind
// must be registered.
func (e *Engine) CreateDocument(ctx context.Context, kind wizard.JourneyKind, crn string, restricted bool) (*document.Document, error) {
	if _, err := e.tasks.TasksFor(kind); err != nil {
		return nil, err
	}
	doc := document.New(string(kind), crn, requestcontext.UserID(ctx), requestcontext.Now(ctx))
	doc.Restricted = restricted
	if err := e.docs.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// GetDocument loads a document for display.
func (e *Engine) GetDocument(ctx context.Context, docID uuid.UUID) (*document.Document, error) {
	return e.docs.Get(ctx, docID)
}

// DependentsOf exposes which pages declare a dependency on the given page's
// field, so a caller can implement invalidation of stale downstream answers.
// The engine deliberately implements no invalidation policy itself.
func (e *Engine) DependentsOf(pageSlug, field string) []string {
	return e.pages.DependentsOf(pageSlug, field)
}
