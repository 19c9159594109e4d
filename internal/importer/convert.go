package importer

import (
	"strings"

	"github.com/alexanderramin/termplan/internal/domain"
)

// Convert turns validated records into courses in file order. OriginalOrder
// is the record index. Call ValidateCatalogFile first.
func Convert(file *CatalogFile) []domain.Course {
	courses := make([]domain.Course, 0, len(file.Courses))
	for i, r := range file.Courses {
		id := strings.TrimSpace(r.ID)
		courses = append(courses, domain.Course{
			ID:            id,
			Name:          domain.CoalesceStr(strings.TrimSpace(r.Name), id),
			Description:   strings.TrimSpace(r.Description),
			Units:         r.Units,
			Difficulty:    domain.IntFromPtrWithDefault(domain.DefaultDifficulty, r.Difficulty),
			Category:      DetermineCategory(r.Category),
			Prerequisites: cleanRefs(r.Prerequisites),
			Corequisites:  cleanRefs(r.Corequisites),
			OriginalOrder: i,
			TakenLabel:    strings.TrimSpace(r.Taken),
		})
	}
	return courses
}

// DetermineCategory classifies free-text category values. Anything that does
// not mention optional, capstone or external is required.
func DetermineCategory(text string) domain.Category {
	v := strings.ToLower(strings.TrimSpace(text))
	switch {
	case strings.Contains(v, "optional"):
		return domain.CategoryOptional
	case strings.Contains(v, "capstone"):
		return domain.CategoryCapstone
	case strings.Contains(v, "external"):
		return domain.CategoryExternal
	default:
		return domain.CategoryRequired
	}
}

// cleanRefs trims reference lists and drops blanks and "none" placeholders.
func cleanRefs(refs []string) []string {
	var out []string
	for _, r := range refs {
		r = strings.TrimSpace(r)
		if r == "" || strings.EqualFold(r, "none") {
			continue
		}
		out = append(out, r)
	}
	return out
}
