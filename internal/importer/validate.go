package importer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var recordValidate *validator.Validate

func init() {
	recordValidate = validator.New()
	recordValidate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidateCatalogFile checks record shape before conversion. It returns every
// problem found rather than stopping at the first. Cross-course integrity
// (unknown references, cycles, corequisite symmetry) is left to the catalog.
func ValidateCatalogFile(file *CatalogFile) []error {
	var errs []error

	if err := recordValidate.Struct(file); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return []error{err}
		}
		for _, fe := range fieldErrs {
			errs = append(errs, describeFieldError(fe))
		}
	}

	seen := make(map[string]int)
	for i, c := range file.Courses {
		id := strings.TrimSpace(c.ID)
		if id == "" {
			continue
		}
		if first, dup := seen[id]; dup {
			errs = append(errs, fmt.Errorf("courses[%d].id: duplicate id %q (first at courses[%d])", i, id, first))
			continue
		}
		seen[id] = i
	}

	return errs
}

// describeFieldError renders a validator failure with the json field path,
// e.g. "courses[2].units: must be greater than 0".
func describeFieldError(fe validator.FieldError) error {
	path := fe.Namespace()
	if i := strings.Index(path, "."); i >= 0 {
		path = path[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", path)
	case "min":
		return fmt.Errorf("%s: must have at least %s entries", path, fe.Param())
	case "gt":
		return fmt.Errorf("%s: must be greater than %s (got %v)", path, fe.Param(), fe.Value())
	case "gte":
		return fmt.Errorf("%s: must be at least %s (got %v)", path, fe.Param(), fe.Value())
	case "lte", "max":
		return fmt.Errorf("%s: must be at most %s (got %v)", path, fe.Param(), fe.Value())
	default:
		return fmt.Errorf("%s: failed %q validation", path, fe.Tag())
	}
}
