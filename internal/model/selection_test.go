package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/ytget/mycourses-downloader/internal/model"
)

func newTestCatalog(t *testing.T) *model.Catalog {
	t.Helper()
	catalog, err := model.NewCatalog([]model.Course{
		{
			ID:   779615,
			Name: "FACC 300",
			Folders: []model.Folder{
				{Name: "Course Material", FileIDs: []string{"8286939", "8286940", "8286941"}},
				{Name: "Course Notes", FileIDs: []string{"8286970"}},
			},
		},
		{
			ID:   762082,
			Name: "ECSE 343",
			Folders: []model.Folder{
				{Name: "Course Outline", FileIDs: []string{"8267885"}},
				{Name: "Lecture Schedule/Handouts", FileIDs: []string{"8268066"}},
			},
		},
		{
			ID:   700001,
			Name: "EMPTY 101",
		},
	})
	gt.NoError(t, err)
	return catalog
}

func TestSelection_Toggle(t *testing.T) {
	sel := model.NewSelection(newTestCatalog(t))

	gt.Bool(t, sel.Toggle(779615)).True()
	gt.Bool(t, sel.IsSelected(779615)).True()
	gt.Number(t, sel.Len()).Equal(1)

	gt.Bool(t, sel.Toggle(779615)).False()
	gt.Bool(t, sel.IsSelected(779615)).False()
	gt.Number(t, sel.Len()).Equal(0)
}

func TestSelection_ToggleTwiceRestoresState(t *testing.T) {
	sel := model.NewSelection(newTestCatalog(t))
	sel.Toggle(762082)

	for _, id := range []int{779615, 762082, 700001} {
		before := sel.IDs()
		sel.Toggle(id)
		sel.Toggle(id)
		gt.Value(t, sel.IDs()).Equal(before)
	}
}

func TestSelection_TotalSelectedContent(t *testing.T) {
	catalog := newTestCatalog(t)

	subsets := [][]int{
		{},
		{779615},
		{762082},
		{700001},
		{779615, 762082},
		{779615, 700001},
		{779615, 762082, 700001},
	}

	for _, subset := range subsets {
		sel := model.NewSelection(catalog)
		expected := 0
		for _, id := range subset {
			sel.Toggle(id)
			expected += catalog.TotalContentForCourse(id)
		}
		gt.Number(t, sel.TotalSelectedContent()).Equal(expected)
	}
}

func TestSelection_TotalContentForCourse(t *testing.T) {
	sel := model.NewSelection(newTestCatalog(t))

	gt.Number(t, sel.TotalContentForCourse(779615)).Equal(4)
	gt.Number(t, sel.TotalContentForCourse(762082)).Equal(2)
	gt.Number(t, sel.TotalContentForCourse(700001)).Equal(0)
	gt.Number(t, sel.TotalContentForCourse(1)).Equal(0)
}

func TestSelection_Labels(t *testing.T) {
	sel := model.NewSelection(newTestCatalog(t))

	gt.Value(t, sel.StatusText()).Equal("Selected courses: None | Total selected content: 0")
	gt.Value(t, sel.ButtonText()).Equal("Download 0 file(s)")

	sel.Toggle(779615)
	sel.Toggle(762082)

	gt.Number(t, sel.TotalSelectedContent()).Equal(6)
	gt.Value(t, sel.StatusText()).Equal("Selected courses: 762082, 779615 | Total selected content: 6")
	gt.Value(t, sel.ButtonText()).Equal("Download 6 file(s)")
}

func TestSelection_Items(t *testing.T) {
	sel := model.NewSelection(newTestCatalog(t))
	sel.Toggle(762082)

	items := sel.Items("https://mycourses2.mcgill.ca/")
	gt.Array(t, items).Length(2)
	gt.Value(t, items[0].URL).Equal("https://mycourses2.mcgill.ca/d2l/le/content/762082/topics/files/download/8267885/DirectFileTopicDownload")
	gt.Value(t, items[1].Folder).Equal("Lecture Schedule/Handouts")
}

func TestFileBadge(t *testing.T) {
	tests := []struct {
		count    int
		expected string
	}{
		{0, "0 files"},
		{1, "1 file"},
		{4, "4 files"},
	}

	for _, test := range tests {
		if result := model.FileBadge(test.count); result != test.expected {
			t.Errorf("FileBadge(%d) = %s, expected %s", test.count, result, test.expected)
		}
	}
}
