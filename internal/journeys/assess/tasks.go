package assess

import (
	"caseflow/internal/form/validate"
	"caseflow/internal/form/wizard"
)

// Journey is the journey kind this package's tasks belong to.
const Journey = wizard.JourneyKind("assess")

// Tasks builds the assess journey's ordered task list.
func Tasks() []wizard.TaskDescriptor {
	return []wizard.TaskDescriptor{
		{
			Slug:  "review-application",
			Title: "Review the application",
			Pages: []wizard.PageDescriptor{
				{
					Slug:          "sufficient-information",
					Task:          "review-application",
					BodyAllowlist: []string{"sufficientInformation", "query"},
					New:           NewSufficientInformation,
				},
				{
					Slug:          "restricted-access-confirmation",
					Task:          "review-application",
					BodyAllowlist: []string{"isAuthorised"},
					New:           NewRestrictedAccessConfirmation,
				},
			},
		},
		{
			Slug:  "request-information",
			Title: "Request further information",
			// Entered only when sufficient-information answers "no"; a
			// fully-informed application never needs this task.
			JumpEntry: true,
			Pages: []wizard.PageDescriptor{
				{
					Slug:          "information-request",
					Task:          "request-information",
					BodyAllowlist: []string{"requestedInformation"},
					DependsOn: []wizard.FieldRef{
						{Page: "sufficient-information", Field: "sufficientInformation"},
					},
					New: NewInformationRequest,
				},
			},
		},
		{
			Slug:  "arrival-details",
			Title: "Arrival details",
			Pages: []wizard.PageDescriptor{
				{
					Slug:          "arrival-date",
					Task:          "arrival-details",
					BodyAllowlist: append(validate.DateKeys("arrivalDate"), "arrivalTime"),
					DependsOn: []wizard.FieldRef{
						{Page: "restricted-access-confirmation", Field: "isAuthorised"},
					},
					New: NewArrivalDate,
				},
			},
		},
	}
}
