package planner

import (
	"testing"

	"github.com/alexanderramin/termplan/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCoreqIndex_Group(t *testing.T) {
	tests := []struct {
		name    string
		courses []domain.Course
		id      string
		want    []string
	}{
		{
			name:    "no corequisites",
			courses: []domain.Course{required("A", 0, 3, 1)},
			id:      "A",
			want:    []string{"A"},
		},
		{
			name: "symmetric pair",
			courses: []domain.Course{
				withCoreqs(required("C", 0, 3, 1), "D"),
				withCoreqs(required("D", 1, 3, 1), "C"),
			},
			id:   "D",
			want: []string{"C", "D"},
		},
		{
			name: "transitive chain",
			courses: []domain.Course{
				withCoreqs(required("X", 2, 3, 1), "Y"),
				withCoreqs(required("Y", 1, 3, 1), "X", "Z"),
				withCoreqs(required("Z", 0, 3, 1), "Y"),
			},
			id:   "X",
			want: []string{"Z", "Y", "X"},
		},
		{
			name: "back-reference only",
			courses: []domain.Course{
				required("P", 0, 3, 1),
				withCoreqs(required("Q", 1, 3, 1), "P"),
			},
			id:   "P",
			want: []string{"P", "Q"},
		},
		{
			name: "non-plannable member is excluded",
			courses: []domain.Course{
				withCoreqs(required("R", 0, 3, 1), "OPT"),
				withCoreqs(optional("OPT", 1, 3), "R"),
			},
			id:   "R",
			want: []string{"R"},
		},
		{
			name:    "unknown id forms its own group",
			courses: []domain.Course{required("A", 0, 3, 1)},
			id:      "NOPE",
			want:    []string{"NOPE"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := NewCoreqIndex(BuildGraph(tt.courses))
			assert.Equal(t, tt.want, idx.Group(tt.id))
		})
	}
}
