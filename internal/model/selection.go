package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Selection is the set of course ids chosen by the user for one UI session.
// It is not safe for concurrent use; the UI mutates it from its own goroutine.
type Selection struct {
	catalog  *Catalog
	selected map[int]struct{}
}

// NewSelection creates an empty selection over the catalog
func NewSelection(catalog *Catalog) *Selection {
	return &Selection{
		catalog:  catalog,
		selected: make(map[int]struct{}),
	}
}

// Toggle removes the id if selected and adds it otherwise. Returns the new state.
func (s *Selection) Toggle(courseID int) bool {
	if _, ok := s.selected[courseID]; ok {
		delete(s.selected, courseID)
		return false
	}
	s.selected[courseID] = struct{}{}
	return true
}

// IsSelected reports whether the course is selected
func (s *Selection) IsSelected(courseID int) bool {
	_, ok := s.selected[courseID]
	return ok
}

// Len returns the number of selected courses
func (s *Selection) Len() int {
	return len(s.selected)
}

// IDs returns the selected course ids in ascending order
func (s *Selection) IDs() []int {
	ids := make([]int, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// TotalContentForCourse returns the file count of one course
func (s *Selection) TotalContentForCourse(courseID int) int {
	return s.catalog.TotalContentForCourse(courseID)
}

// TotalSelectedContent returns the file count over all selected courses
func (s *Selection) TotalSelectedContent() int {
	total := 0
	for id := range s.selected {
		total += s.catalog.TotalContentForCourse(id)
	}
	return total
}

// Items returns the download items of the selected courses
func (s *Selection) Items(baseURL string) []DownloadItem {
	return s.catalog.Items(baseURL, s.IDs())
}

// StatusText renders the status line shown above the course grid
func (s *Selection) StatusText() string {
	ids := "None"
	if len(s.selected) > 0 {
		parts := make([]string, 0, len(s.selected))
		for _, id := range s.IDs() {
			parts = append(parts, strconv.Itoa(id))
		}
		ids = strings.Join(parts, ", ")
	}
	return fmt.Sprintf("Selected courses: %s | Total selected content: %d", ids, s.TotalSelectedContent())
}

// ButtonText renders the label of the download button
func (s *Selection) ButtonText() string {
	return fmt.Sprintf("Download %d file(s)", s.TotalSelectedContent())
}

// FileBadge renders the file count badge of a course card
func FileBadge(count int) string {
	if count == 1 {
		return "1 file"
	}
	return fmt.Sprintf("%d files", count)
}
