package planner

import "fmt"

type OperationCode string

const (
	OpUnknownCourse    OperationCode = "UNKNOWN_COURSE"
	OpUnknownTerm      OperationCode = "UNKNOWN_TERM"
	OpTermLocked       OperationCode = "TERM_LOCKED"
	OpCourseUnassigned OperationCode = "COURSE_UNASSIGNED"
	OpCourseInvalid    OperationCode = "COURSE_INVALID"
	OpTermInvalid      OperationCode = "TERM_INVALID"
)

// OperationError is a rejected manual operation. The session is left
// unchanged when one is returned.
type OperationError struct {
	Code     OperationCode
	CourseID string
	TermID   string
	Message  string
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func unknownCourse(id string) *OperationError {
	return &OperationError{Code: OpUnknownCourse, CourseID: id, Message: fmt.Sprintf("course %q not found", id)}
}

func unknownTerm(id string) *OperationError {
	return &OperationError{Code: OpUnknownTerm, TermID: id, Message: fmt.Sprintf("term %q not found", id)}
}

func termLocked(id string) *OperationError {
	return &OperationError{Code: OpTermLocked, TermID: id, Message: fmt.Sprintf("term %q is locked", id)}
}
