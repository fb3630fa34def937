package model

import (
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// DirectDownloadPathFormat is the D2L endpoint that streams a content file as
// an attachment. Arguments: course id, file id.
const DirectDownloadPathFormat = "/d2l/le/content/%d/topics/files/download/%s/DirectFileTopicDownload"

// Folder is a named group of file identifiers inside a course
type Folder struct {
	Name    string   `toml:"name"`
	FileIDs []string `toml:"files"`
}

// Course represents a single course of the catalog
type Course struct {
	ID           int      `toml:"id"`
	Name         string   `toml:"name"`
	ThumbnailURL string   `toml:"thumbnail"`
	Folders      []Folder `toml:"folder"`
}

// FileCount returns the number of files across all folders of the course
func (c *Course) FileCount() int {
	total := 0
	for _, folder := range c.Folders {
		total += len(folder.FileIDs)
	}
	return total
}

// Catalog is the static, ordered list of downloadable courses
type Catalog struct {
	courses []*Course
	byID    map[int]*Course
}

// NewCatalog builds a catalog preserving the given order. Course ids must be unique.
func NewCatalog(courses []Course) (*Catalog, error) {
	c := &Catalog{
		courses: make([]*Course, 0, len(courses)),
		byID:    make(map[int]*Course, len(courses)),
	}

	for i := range courses {
		course := courses[i]
		if _, exists := c.byID[course.ID]; exists {
			return nil, goerr.New("duplicate course id", goerr.V("course_id", course.ID))
		}
		c.courses = append(c.courses, &course)
		c.byID[course.ID] = &course
	}

	return c, nil
}

// Courses returns all courses in catalog order
func (c *Catalog) Courses() []*Course {
	return c.courses
}

// Course returns a course by id
func (c *Catalog) Course(id int) (*Course, bool) {
	course, exists := c.byID[id]
	return course, exists
}

// Len returns the number of courses
func (c *Catalog) Len() int {
	return len(c.courses)
}

// TotalContentForCourse returns the number of files of one course, 0 if unknown
func (c *Catalog) TotalContentForCourse(id int) int {
	course, exists := c.byID[id]
	if !exists {
		return 0
	}
	return course.FileCount()
}

// DownloadItem is one file scheduled for download
type DownloadItem struct {
	CourseID int
	Folder   string
	FileID   string
	URL      string
}

// DownloadURL builds the direct-download URL for a course file
func DownloadURL(baseURL string, courseID int, fileID string) string {
	return strings.TrimRight(baseURL, "/") + fmt.Sprintf(DirectDownloadPathFormat, courseID, fileID)
}

// Items returns download items for the given courses, in catalog order.
// Unknown ids are ignored.
func (c *Catalog) Items(baseURL string, courseIDs []int) []DownloadItem {
	wanted := make(map[int]bool, len(courseIDs))
	for _, id := range courseIDs {
		wanted[id] = true
	}

	var items []DownloadItem
	for _, course := range c.courses {
		if !wanted[course.ID] {
			continue
		}
		for _, folder := range course.Folders {
			for _, fileID := range folder.FileIDs {
				items = append(items, DownloadItem{
					CourseID: course.ID,
					Folder:   folder.Name,
					FileID:   fileID,
					URL:      DownloadURL(baseURL, course.ID, fileID),
				})
			}
		}
	}
	return items
}

// IDs returns all course ids in catalog order
func (c *Catalog) IDs() []int {
	ids := make([]int, 0, len(c.courses))
	for _, course := range c.courses {
		ids = append(ids, course.ID)
	}
	return ids
}
