// Package document holds the persisted case record and its stores.
//
// The document is the sole unit of persistence: pages never persist
// themselves. Each page submission replaces exactly one data[task][page]
// entry. Once submitted the document is the read-only audit record of what
// was asked and answered.
package document

import (
	"time"

	"github.com/google/uuid"

	dErrors "caseflow/pkg/domain-errors"
)

// Status is the document lifecycle state.
type Status string

const (
	StatusStarted   Status = "started"
	StatusSubmitted Status = "submitted"
)

// PageData is the nested task -> page -> field -> value mapping.
type PageData map[string]map[string]map[string]any

// Document is a persisted case record (an application or an assessment).
type Document struct {
	ID          uuid.UUID  `json:"id"`
	JourneyKind string     `json:"journey_kind"`
	CRN         string     `json:"crn"`
	CreatedBy   string     `json:"created_by"`
	Status      Status     `json:"status"`
	Restricted  bool       `json:"restricted"`
	CreatedAt   time.Time  `json:"created_at"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	Data        PageData   `json:"data"`
}

// New creates an empty started document for the given case.
func New(journeyKind, crn, createdBy string, now time.Time) *Document {
	return &Document{
		ID:          uuid.New(),
		JourneyKind: journeyKind,
		CRN:         crn,
		CreatedBy:   createdBy,
		Status:      StatusStarted,
		CreatedAt:   now,
		Data:        make(PageData),
	}
}

// PageBody returns the stored body of a page, if any.
func (d *Document) PageBody(taskSlug, pageSlug string) (map[string]any, bool) {
	task, ok := d.Data[taskSlug]
	if !ok {
		return nil, false
	}
	body, ok := task[pageSlug]
	return body, ok
}

// Retrieve reads another page's persisted answer by page slug and field name.
// Page slugs are globally unique so the owning task does not need to be
// named. The lookup is read-only. It fails when the page has no stored data
// or the field is absent.
func (d *Document) Retrieve(pageSlug, fieldName string) (any, error) {
	body, ok := d.pageBodyBySlug(pageSlug)
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeNotFound,
			"document %s has no data for page %q", d.ID, pageSlug)
	}
	v, ok := body[fieldName]
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeNotFound,
			"document %s page %q has no field %q", d.ID, pageSlug, fieldName)
	}
	return v, nil
}

// RetrieveOptional is Retrieve for answers that may legitimately be absent.
func (d *Document) RetrieveOptional(pageSlug, fieldName string) (any, bool) {
	body, ok := d.pageBodyBySlug(pageSlug)
	if !ok {
		return nil, false
	}
	v, ok := body[fieldName]
	return v, ok
}

// RetrieveString is Retrieve narrowed to string answers, returning "" with
// ok=false when the answer is absent or not a string.
func (d *Document) RetrieveString(pageSlug, fieldName string) (string, bool) {
	v, ok := d.RetrieveOptional(pageSlug, fieldName)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (d *Document) pageBodyBySlug(pageSlug string) (map[string]any, bool) {
	for _, task := range d.Data {
		if body, ok := task[pageSlug]; ok {
			return body, true
		}
	}
	return nil, false
}

// setPageBody replaces one data[task][page] entry in place.
func (d *Document) setPageBody(taskSlug, pageSlug string, body map[string]any) {
	if d.Data == nil {
		d.Data = make(PageData)
	}
	if d.Data[taskSlug] == nil {
		d.Data[taskSlug] = make(map[string]map[string]any)
	}
	d.Data[taskSlug][pageSlug] = body
}
