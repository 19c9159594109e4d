package catalog

import (
	"fmt"
	"strings"
)

type IssueCode string

const (
	IssueEmptyID               IssueCode = "EMPTY_ID"
	IssueDuplicateID           IssueCode = "DUPLICATE_ID"
	IssueSelfPrerequisite      IssueCode = "SELF_PREREQUISITE"
	IssueSelfCorequisite       IssueCode = "SELF_COREQUISITE"
	IssueAsymmetricCorequisite IssueCode = "ASYMMETRIC_COREQUISITE"
	IssueUnknownPrerequisite   IssueCode = "UNKNOWN_PREREQUISITE"
	IssueUnknownCorequisite    IssueCode = "UNKNOWN_COREQUISITE"
	IssueInvalidUnits          IssueCode = "INVALID_UNITS"
	IssueInvalidDifficulty     IssueCode = "INVALID_DIFFICULTY"
	IssuePrerequisiteCycle     IssueCode = "PREREQUISITE_CYCLE"
)

// Issue is one data-integrity problem found while building a catalog.
type Issue struct {
	Code     IssueCode
	CourseID string
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Code, i.Message)
}

// ValidationError aggregates every issue found in one catalog build.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "catalog validation failed (%d issues):", len(e.Issues))
	for _, issue := range e.Issues {
		b.WriteString("\n  - ")
		b.WriteString(issue.String())
	}
	return b.String()
}

// HasCode reports whether any issue carries the given code.
func (e *ValidationError) HasCode(code IssueCode) bool {
	for _, issue := range e.Issues {
		if issue.Code == code {
			return true
		}
	}
	return false
}
