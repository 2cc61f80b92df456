package model

import "fmt"

// Family identifies one of the parallel feedback subsystems. Families share
// tables but are versioned and activated independently.
type Family string

const (
	FamilyStudentFeedback    Family = "student-feedback"
	FamilySupervisorFeedback Family = "supervisor-feedback"
	FamilyAppraisal          Family = "appraisal"
)

var Families = []Family{FamilyStudentFeedback, FamilySupervisorFeedback, FamilyAppraisal}

func ParseFamily(s string) (Family, error) {
	for _, f := range Families {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown feedback family %q", s)
}

// HasCategories reports whether questions are grouped under categories.
func (f Family) HasCategories() bool { return f == FamilyAppraisal }

// DefaultActive is the is_active value a freshly created template gets.
func (f Family) DefaultActive() bool { return f == FamilyStudentFeedback }

// UsesAccessCode reports whether responses come from an external party
// redeeming an emailed access code.
func (f Family) UsesAccessCode() bool {
	return f == FamilySupervisorFeedback || f == FamilyAppraisal
}

// RatesNumerically reports whether answers are integer ratings instead of
// Likert values.
func (f Family) RatesNumerically() bool { return f == FamilyAppraisal }

// Requirement is the name used for the linked student_submissions row.
func (f Family) Requirement() string {
	switch f {
	case FamilySupervisorFeedback:
		return "Supervisor Feedback Form"
	case FamilyAppraisal:
		return "Supervisor Appraisal Form"
	default:
		return "Student Feedback Form"
	}
}
