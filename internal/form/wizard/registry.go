package wizard

import (
	"fmt"
	"sort"

	dErrors "caseflow/pkg/domain-errors"
)

// PageRegistry maps slugs to page descriptors. Built once at process start
// and read-only thereafter; duplicate registration is a programming error and
// panics.
type PageRegistry struct {
	pages map[string]PageDescriptor
}

// NewPageRegistry creates an empty page registry.
func NewPageRegistry() *PageRegistry {
	return &PageRegistry{pages: make(map[string]PageDescriptor)}
}

// Register adds a descriptor. It panics on a duplicate or malformed slug:
// registries are assembled at startup, so failing fast beats serving two
// pages that write into each other's document entries.
func (r *PageRegistry) Register(d PageDescriptor) {
	if d.Slug == "" || d.Task == "" || d.New == nil {
		panic(fmt.Sprintf("wizard: invalid page descriptor %q (task %q)", d.Slug, d.Task))
	}
	if _, exists := r.pages[d.Slug]; exists {
		panic(fmt.Sprintf("wizard: duplicate page slug %q", d.Slug))
	}
	r.pages[d.Slug] = d
}

// Resolve returns the descriptor for slug.
func (r *PageRegistry) Resolve(slug string) (PageDescriptor, error) {
	d, ok := r.pages[slug]
	if !ok {
		return PageDescriptor{}, dErrors.Newf(dErrors.CodeNotFound, "no page registered for slug %q", slug)
	}
	return d, nil
}

// FilterBody strips every key not in the page's allowlist. Values pass
// through untouched, including nested arrays and records from multi-value
// form fields. Applying it twice is a no-op.
func (r *PageRegistry) FilterBody(slug string, raw Body) (Body, error) {
	d, err := r.Resolve(slug)
	if err != nil {
		return nil, err
	}
	filtered := make(Body, len(d.BodyAllowlist))
	for _, key := range d.BodyAllowlist {
		if v, ok := raw[key]; ok {
			filtered[key] = v
		}
	}
	return filtered, nil
}

// DependentsOf returns the slugs of pages that declare a dependency on the
// given page's field. Callers use this to implement invalidation of stale
// downstream answers; the engine itself does not invalidate.
func (r *PageRegistry) DependentsOf(pageSlug, field string) []string {
	var out []string
	for slug, d := range r.pages {
		for _, ref := range d.DependsOn {
			if ref.Page == pageSlug && ref.Field == field {
				out = append(out, slug)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}
