package postgres

import (
	"testing"

	"github.com/edu-market/course-service/internal/repositories"
)

func TestCourseSortColumns(t *testing.T) {
	accepted := map[string]string{
		"title":      "title ASC",
		"created_at": "created_at ASC",
	}
	for field, want := range accepted {
		if got := courseSortColumns[field]; got != want {
			t.Errorf("courseSortColumns[%q] = %q, want %q", field, got, want)
		}
	}

	rejected := []string{"price", "teacher", "id", "", "title DESC", "created_at; DROP TABLE courses"}
	for _, field := range rejected {
		if order, ok := courseSortColumns[field]; ok {
			t.Errorf("courseSortColumns[%q] = %q, want it rejected", field, order)
		}
	}
}

func TestCourseListCacheKey(t *testing.T) {
	teacherID := uint(3)
	categoryID := uint(9)

	cases := []struct {
		name    string
		filters repositories.CourseFilters
		want    string
	}{
		{
			name:    "no filters",
			filters: repositories.CourseFilters{},
			want:    "list:teacher:any:category:any:sort:default",
		},
		{
			name:    "allowed ordering",
			filters: repositories.CourseFilters{SortBy: "title"},
			want:    "list:teacher:any:category:any:sort:title",
		},
		{
			name:    "unknown ordering falls back while filters hold",
			filters: repositories.CourseFilters{TeacherID: &teacherID, SortBy: "price"},
			want:    "list:teacher:3:category:any:sort:default",
		},
		{
			name:    "both filters with ordering",
			filters: repositories.CourseFilters{TeacherID: &teacherID, CategoryID: &categoryID, SortBy: "created_at"},
			want:    "list:teacher:3:category:9:sort:created_at",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := courseListCacheKey(tc.filters); got != tc.want {
				t.Errorf("courseListCacheKey(%+v) = %q, want %q", tc.filters, got, tc.want)
			}
		})
	}
}
