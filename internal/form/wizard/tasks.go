package wizard

import (
	"fmt"

	dErrors "caseflow/pkg/domain-errors"
)

// TaskRegistry holds the ordered task lists of each journey. Feature-flag
// filtering happens while the registry is assembled, once per process
// lifetime, so navigation answers stay stable within a session.
type TaskRegistry struct {
	pages    *PageRegistry
	journeys map[JourneyKind][]TaskDescriptor
	tasks    map[string]TaskDescriptor
}

// NewTaskRegistry creates a task registry that registers every task's pages
// into the given page registry.
func NewTaskRegistry(pages *PageRegistry) *TaskRegistry {
	return &TaskRegistry{
		pages:    pages,
		journeys: make(map[JourneyKind][]TaskDescriptor),
		tasks:    make(map[string]TaskDescriptor),
	}
}

// AddJourney registers the ordered tasks of a journey. Panics on malformed
// descriptors for the same reason PageRegistry.Register does.
func (t *TaskRegistry) AddJourney(kind JourneyKind, tasks ...TaskDescriptor) {
	if _, exists := t.journeys[kind]; exists {
		panic(fmt.Sprintf("wizard: journey %q already registered", kind))
	}
	for _, task := range tasks {
		if task.Slug == "" || len(task.Pages) == 0 {
			panic(fmt.Sprintf("wizard: invalid task descriptor %q in journey %q", task.Slug, kind))
		}
		if _, exists := t.tasks[task.Slug]; exists {
			panic(fmt.Sprintf("wizard: duplicate task slug %q", task.Slug))
		}
		for _, page := range task.Pages {
			if page.Task != task.Slug {
				panic(fmt.Sprintf("wizard: page %q declares task %q but is listed under %q",
					page.Slug, page.Task, task.Slug))
			}
			t.pages.Register(page)
		}
		t.tasks[task.Slug] = task
	}
	t.journeys[kind] = tasks
}

// TasksFor returns the ordered task list of a journey.
func (t *TaskRegistry) TasksFor(kind JourneyKind) ([]TaskDescriptor, error) {
	tasks, ok := t.journeys[kind]
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "no journey registered for kind %q", kind)
	}
	return tasks, nil
}

// PagesOf returns the ordered pages of a task.
func (t *TaskRegistry) PagesOf(taskSlug string) ([]PageDescriptor, error) {
	task, ok := t.tasks[taskSlug]
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "no task registered for slug %q", taskSlug)
	}
	return task.Pages, nil
}
