package apply

import (
	"caseflow/internal/form/validate"
	"caseflow/internal/form/wizard"
	"caseflow/internal/platform/config"
)

// Journey is the journey kind this package's tasks belong to.
const Journey = wizard.JourneyKind("apply")

// Tasks builds the apply journey's ordered task list. Flag filtering happens
// here, once at startup, so the set of registered pages never changes while
// the process is serving.
func Tasks(flags config.Flags) []wizard.TaskDescriptor {
	tasks := []wizard.TaskDescriptor{
		{
			Slug:  "basic-information",
			Title: "Basic information",
			Pages: []wizard.PageDescriptor{
				{
					Slug:          "case-responsibility",
					Task:          "basic-information",
					BodyAllowlist: []string{"isResponsibilityRetained"},
					New:           NewCaseResponsibility,
				},
				{
					Slug:          "board-review",
					Task:          "basic-information",
					BodyAllowlist: append([]string{"hasBoardTakenPlace"}, validate.DateKeys("boardDate")...),
					New:           NewBoardReview,
				},
			},
		},
		{
			Slug:  "placement-reason",
			Title: "Reason for placement",
			Pages: []wizard.PageDescriptor{
				{
					Slug:          "placement-reason",
					Task:          "placement-reason",
					BodyAllowlist: []string{"reason", "otherDetail"},
					New:           NewPlacementReason,
				},
			},
		},
		{
			Slug:  "risk-management",
			Title: "Risk management",
			Pages: []wizard.PageDescriptor{
				{
					Slug:          "risk-information",
					Task:          "risk-management",
					BodyAllowlist: []string{"confirmedRiskInformation", "managedRiskFactors"},
					New:           NewRiskInformation,
				},
			},
		},
		{
			Slug:  "move-on",
			Title: "Move on arrangements",
			Pages: []wizard.PageDescriptor{
				{
					Slug:          "placement-arrangements",
					Task:          "move-on",
					BodyAllowlist: []string{"expectedDurationWeeks"},
					DependsOn: []wizard.FieldRef{
						{Page: "case-responsibility", Field: "isResponsibilityRetained"},
					},
					New: NewPlacementArrangements,
				},
				{
					Slug:          "applicant-contact",
					Task:          "move-on",
					BodyAllowlist: []string{"contactName", "contactEmail"},
					DependsOn: []wizard.FieldRef{
						{Page: "case-responsibility", Field: "isResponsibilityRetained"},
					},
					New: NewApplicantContact,
				},
				{
					Slug:          "provider-contact",
					Task:          "move-on",
					BodyAllowlist: []string{"providerName", "contactPhone"},
					New:           NewProviderContact,
				},
			},
		},
	}

	if flags.AttachDocumentsEnabled {
		tasks = append(tasks, wizard.TaskDescriptor{
			Slug:  "attach-documents",
			Title: "Attach documents",
			Pages: []wizard.PageDescriptor{
				{
					Slug:          "attach-documents",
					Task:          "attach-documents",
					BodyAllowlist: []string{"selectedDocuments"},
					New:           NewAttachDocuments,
				},
			},
		})
	}
	return tasks
}
