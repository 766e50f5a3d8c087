package wizard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caseflow/internal/form/document"
	dErrors "caseflow/pkg/domain-errors"
)

type nopPage struct{ body Body }

func (p nopPage) Body() Body               { return p.body }
func (p nopPage) Errors() Errors           { return Errors{} }
func (p nopPage) Response() []QA           { return nil }
func (p nopPage) Next() string             { return "" }
func (p nopPage) Previous() (string, error) { return "", nil }

func newNopPage(_ context.Context, body Body, _ *document.Document) (Page, error) {
	return nopPage{body: body}, nil
}

func descriptor(slug, task string, allowlist ...string) PageDescriptor {
	return PageDescriptor{Slug: slug, Task: task, BodyAllowlist: allowlist, New: newNopPage}
}

func TestRegisterDuplicateSlugPanics(t *testing.T) {
	r := NewPageRegistry()
	r.Register(descriptor("case-responsibility", "basic-information"))

	assert.PanicsWithValue(t,
		`wizard: duplicate page slug "case-responsibility"`,
		func() { r.Register(descriptor("case-responsibility", "another-task")) },
	)
}

func TestRegisterMalformedPanics(t *testing.T) {
	r := NewPageRegistry()
	assert.Panics(t, func() { r.Register(PageDescriptor{Task: "basic-information", New: newNopPage}) })
	assert.Panics(t, func() { r.Register(PageDescriptor{Slug: "case-responsibility", New: newNopPage}) })
	assert.Panics(t, func() { r.Register(PageDescriptor{Slug: "case-responsibility", Task: "basic-information"}) })
}

func TestResolveUnknownSlug(t *testing.T) {
	r := NewPageRegistry()
	_, err := r.Resolve("missing")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestFilterBodyStripsUnknownKeys(t *testing.T) {
	r := NewPageRegistry()
	r.Register(descriptor("board-review", "basic-information", "hasBoardTakenPlace"))

	filtered, err := r.FilterBody("board-review", Body{
		"hasBoardTakenPlace": "yes",
		"injectedField":      "malicious",
		"csrfToken":          "abc123",
	})
	require.NoError(t, err)

	assert.Equal(t, Body{"hasBoardTakenPlace": "yes"}, filtered)
}

func TestFilterBodyIdempotent(t *testing.T) {
	r := NewPageRegistry()
	r.Register(descriptor("board-review", "basic-information", "hasBoardTakenPlace", "boardDate"))

	once, err := r.FilterBody("board-review", Body{"hasBoardTakenPlace": "no", "extra": true})
	require.NoError(t, err)
	twice, err := r.FilterBody("board-review", once)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestFilterBodyPassesNestedValues(t *testing.T) {
	r := NewPageRegistry()
	r.Register(descriptor("attach-documents", "attach-documents", "selectedDocuments"))

	nested := []any{
		map[string]any{"id": "doc-1", "name": "licence.pdf"},
		map[string]any{"id": "doc-2", "name": "risk-summary.pdf"},
	}
	filtered, err := r.FilterBody("attach-documents", Body{"selectedDocuments": nested})
	require.NoError(t, err)

	assert.Equal(t, nested, filtered["selectedDocuments"])
}

func TestFilterBodyAbsentKeysOmitted(t *testing.T) {
	r := NewPageRegistry()
	r.Register(descriptor("board-review", "basic-information", "hasBoardTakenPlace", "boardDate"))

	filtered, err := r.FilterBody("board-review", Body{"hasBoardTakenPlace": "no"})
	require.NoError(t, err)

	_, present := filtered["boardDate"]
	assert.False(t, present)
}

func TestDependentsOf(t *testing.T) {
	r := NewPageRegistry()
	r.Register(descriptor("case-responsibility", "basic-information", "isResponsibilityRetained"))

	arrangements := descriptor("placement-arrangements", "move-on", "expectedDurationWeeks")
	arrangements.DependsOn = []FieldRef{{Page: "case-responsibility", Field: "isResponsibilityRetained"}}
	r.Register(arrangements)

	contact := descriptor("applicant-contact", "move-on", "email")
	contact.DependsOn = []FieldRef{{Page: "case-responsibility", Field: "isResponsibilityRetained"}}
	r.Register(contact)

	assert.Equal(t,
		[]string{"applicant-contact", "placement-arrangements"},
		r.DependentsOf("case-responsibility", "isResponsibilityRetained"),
	)
	assert.Empty(t, r.DependentsOf("case-responsibility", "someOtherField"))
}

func TestAddJourneyValidations(t *testing.T) {
	newRegistries := func() (*PageRegistry, *TaskRegistry) {
		pages := NewPageRegistry()
		return pages, NewTaskRegistry(pages)
	}

	t.Run("duplicate journey", func(t *testing.T) {
		_, tasks := newRegistries()
		task := TaskDescriptor{Slug: "basic-information", Title: "Basic information",
			Pages: []PageDescriptor{descriptor("case-responsibility", "basic-information")}}
		tasks.AddJourney("apply", task)
		assert.Panics(t, func() { tasks.AddJourney("apply", task) })
	})

	t.Run("page listed under wrong task", func(t *testing.T) {
		_, tasks := newRegistries()
		assert.Panics(t, func() {
			tasks.AddJourney("apply", TaskDescriptor{Slug: "basic-information", Title: "Basic information",
				Pages: []PageDescriptor{descriptor("case-responsibility", "some-other-task")}})
		})
	})

	t.Run("registers pages and orders tasks", func(t *testing.T) {
		pages, tasks := newRegistries()
		tasks.AddJourney("apply",
			TaskDescriptor{Slug: "basic-information", Title: "Basic information",
				Pages: []PageDescriptor{descriptor("case-responsibility", "basic-information")}},
			TaskDescriptor{Slug: "move-on", Title: "Move on",
				Pages: []PageDescriptor{descriptor("placement-arrangements", "move-on")}},
		)

		_, err := pages.Resolve("placement-arrangements")
		require.NoError(t, err)

		ordered, err := tasks.TasksFor("apply")
		require.NoError(t, err)
		require.Len(t, ordered, 2)
		assert.Equal(t, "basic-information", ordered[0].Slug)
		assert.Equal(t, "move-on", ordered[1].Slug)

		_, err = tasks.TasksFor("assess")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}
