// Package hydrate merges live external data into page instances before
// render. Independent calls are issued concurrently; each call's outcome is
// isolated so one failing upstream never aborts the others, and every failure
// degrades to a stub payload with an outcome flag the rendering layer can
// show a degraded-data notice from.
package hydrate

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"caseflow/internal/form/document"
	"caseflow/internal/platform/metrics"
	"caseflow/internal/upstream/caseapi"
	"caseflow/internal/upstream/identityapi"
	"caseflow/internal/upstream/personapi"
	dErrors "caseflow/pkg/domain-errors"
)

// Outcome tags the result of one external call.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeNotFound Outcome = "not_found"
	OutcomeFailure  Outcome = "failure"
)

// Result holds one external call's payload and outcome. On a non-success
// outcome Value is the stub fallback, never a partial response.
type Result[T any] struct {
	Value   T
	Outcome Outcome
}

// Succeeded reports whether live data was fetched.
func (r Result[T]) Succeeded() bool {
	return r.Outcome == OutcomeSuccess
}

// CaseService is the slice of the case/document service hydration needs.
type CaseService interface {
	GetAttachedFiles(ctx context.Context, id uuid.UUID) ([]caseapi.AttachedFile, error)
}

// PersonService is the slice of the person/risk service hydration needs.
type PersonService interface {
	GetRiskSummary(ctx context.Context, crn string) (personapi.RiskSummary, error)
	GetAssessmentSection(ctx context.Context, crn, sectionName string, subsections ...string) (personapi.AssessmentSection, error)
	GetAlerts(ctx context.Context, crn string) ([]personapi.Alert, error)
}

// IdentityService is the slice of the identity service hydration needs.
type IdentityService interface {
	GetUserByID(ctx context.Context, id string) (identityapi.User, error)
}

// Deps bundles everything a page's Hydrate needs.
type Deps struct {
	Case     CaseService
	Person   PersonService
	Identity IdentityService
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
}

// Hydrator is implemented by pages that need external data. Pages without it
// are constructed synchronously from body and document alone.
//
// Hydrate must be idempotent: a GET re-render after a validation failure
// calls it again, and its only side effects are the read-only external calls.
type Hydrator interface {
	Hydrate(ctx context.Context, deps *Deps) error
}

// Gatherer runs independent hydration calls concurrently and joins them.
type Gatherer struct {
	group *errgroup.Group
	ctx   context.Context
	deps  *Deps
	span  trace.Span
}

// NewGatherer opens a gather scope. Call Wait to join.
func NewGatherer(ctx context.Context, deps *Deps) *Gatherer {
	ctx, span := otel.Tracer("caseflow/form/hydrate").Start(ctx, "hydrate.gather")
	group, ctx := errgroup.WithContext(ctx)
	return &Gatherer{group: group, ctx: ctx, deps: deps, span: span}
}

// Wait joins all calls. It returns nil in the degrade-and-flag regime; the
// error return exists for future structural short-circuits.
func (g *Gatherer) Wait() error {
	err := g.group.Wait()
	g.span.End()
	return err
}

// Fetch launches one external call. The result lands in *out: live data on
// success, stub otherwise, with the outcome flag set. Errors never propagate
// to the caller; not-found is logged at debug, infrastructure faults at warn
// so telemetry can tell them apart.
func Fetch[T any](g *Gatherer, source string, stub T, call func(ctx context.Context) (T, error), out *Result[T]) {
	g.group.Go(func() error {
		start := time.Now()
		value, err := call(g.ctx)
		elapsed := time.Since(start)

		outcome := classify(err)
		g.deps.Metrics.ObserveHydration(source, string(outcome), elapsed)

		switch outcome {
		case OutcomeSuccess:
			*out = Result[T]{Value: value, Outcome: OutcomeSuccess}
		case OutcomeNotFound:
			g.deps.Logger.DebugContext(g.ctx, "hydration source had no data",
				"source", source)
			*out = Result[T]{Value: stub, Outcome: OutcomeNotFound}
		default:
			g.deps.Logger.WarnContext(g.ctx, "hydration source failed",
				"source", source,
				"error", err,
			)
			*out = Result[T]{Value: stub, Outcome: OutcomeFailure}
		}
		return nil
	})
}

func classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case dErrors.HasCode(err, dErrors.CodeUpstreamNotFound), dErrors.HasCode(err, dErrors.CodeNotFound):
		return OutcomeNotFound
	default:
		return OutcomeFailure
	}
}

// RequireAnswer loads an upstream answer a page cannot make sense without.
// Unlike external calls, a structurally incomplete document fails fast with a
// structural error instead of degrading.
func RequireAnswer(doc *document.Document, pageSlug, fieldName string) (any, error) {
	v, err := doc.Retrieve(pageSlug, fieldName)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStructural,
			"document is missing the answer this page depends on")
	}
	return v, nil
}
