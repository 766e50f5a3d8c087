package engine

import (
	"context"

	"github.com/google/uuid"

	"caseflow/internal/form/document"
	"caseflow/internal/form/wizard"
	dErrors "caseflow/pkg/domain-errors"
	"caseflow/pkg/requestcontext"
)

// TaskState reports one task's completion for a task-list view. Task order
// in the registry is only the default traversal, so completion is computed by
// walking navigation from the entry page against the current document rather
// than assuming linearity.
type TaskState struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Complete bool   `json:"complete"`

	// Required is false for a jump-entry task whose jump the current
	// document does not take; such a task never blocks submission.
	Required bool `json:"required"`
}

// TaskComplete walks the task from its entry page via each page's next()
// until the task ends or navigation jumps to another task. The task is
// complete when every visited page validates cleanly against its stored body.
func (e *Engine) TaskComplete(ctx context.Context, doc *document.Document, task wizard.TaskDescriptor) (bool, error) {
	complete, _, err := e.walkTask(ctx, doc, task)
	return complete, err
}

// walkTask reports the task's completion and, when the walk ends by crossing
// a task boundary, the slug of the task it jumps into.
func (e *Engine) walkTask(ctx context.Context, doc *document.Document, task wizard.TaskDescriptor) (bool, string, error) {
	visited := make(map[string]bool)
	slug := task.Pages[0].Slug

	for slug != "" {
		if visited[slug] {
			return false, "", dErrors.Newf(dErrors.CodeInvariantViolation,
				"navigation cycle through page %q in task %q", slug, task.Slug)
		}
		visited[slug] = true

		desc, err := e.pages.Resolve(slug)
		if err != nil {
			return false, "", dErrors.Wrap(err, dErrors.CodeInvariantViolation,
				"navigation reached an unregistered page")
		}
		if desc.Task != task.Slug {
			// Cross-task jump ends this task's walk.
			return true, desc.Task, nil
		}

		stored, ok := doc.PageBody(desc.Task, slug)
		if !ok {
			return false, "", nil
		}
		// Completion is a data-only check: construct without external
		// hydration so a degraded upstream cannot flip task state.
		page, _, err := e.initialize(ctx, doc, slug, stored, false)
		if err != nil {
			if dErrors.HasCode(err, dErrors.CodeStructural) {
				return false, "", nil
			}
			return false, "", err
		}
		if len(page.Errors()) > 0 {
			return false, "", nil
		}
		slug = page.Next()
	}
	return true, "", nil
}

// TaskStates computes the task-list states for a journey against a document.
// A jump-entry task counts as required only when another task's walk actually
// jumps into it given the current document.
func (e *Engine) TaskStates(ctx context.Context, doc *document.Document, kind wizard.JourneyKind) ([]TaskState, error) {
	tasks, err := e.tasks.TasksFor(kind)
	if err != nil {
		return nil, err
	}
	states := make([]TaskState, 0, len(tasks))
	jumpedInto := make(map[string]bool)
	for _, task := range tasks {
		complete, jumpTo, err := e.walkTask(ctx, doc, task)
		if err != nil {
			return nil, err
		}
		if jumpTo != "" {
			jumpedInto[jumpTo] = true
		}
		states = append(states, TaskState{Slug: task.Slug, Title: task.Title, Complete: complete})
	}
	for i, task := range tasks {
		states[i].Required = !task.JumpEntry || jumpedInto[task.Slug]
	}
	return states, nil
}

// TaskList computes the task-list states for a document's own journey.
func (e *Engine) TaskList(ctx context.Context, docID uuid.UUID) ([]TaskState, error) {
	doc, err := e.docs.Get(ctx, docID)
	if err != nil {
		return nil, err
	}
	return e.TaskStates(ctx, doc, wizard.JourneyKind(doc.JourneyKind))
}

// SubmitDocument freezes the document once every required task of its
// journey is complete. A jump-entry task whose jump was not taken does not
// block submission: the journey's own routing declared it unnecessary.
func (e *Engine) SubmitDocument(ctx context.Context, docID uuid.UUID) error {
	doc, err := e.docs.Get(ctx, docID)
	if err != nil {
		return err
	}
	states, err := e.TaskStates(ctx, doc, wizard.JourneyKind(doc.JourneyKind))
	if err != nil {
		return err
	}
	for _, state := range states {
		if state.Required && !state.Complete {
			return dErrors.Newf(dErrors.CodeConflict,
				"task %q is incomplete; the document cannot be submitted", state.Slug)
		}
	}
	return e.docs.Submit(ctx, docID, requestcontext.Now(ctx))
}
