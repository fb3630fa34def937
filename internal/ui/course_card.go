package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/mycourses-downloader/internal/model"
)

// CourseCard shows one course with its thumbnail and file count. Tapping the
// card toggles its selection through the onTapped callback.
type CourseCard struct {
	widget.BaseWidget

	course   *model.Course
	selected bool
	onTapped func(courseID int)

	// UI components
	background *canvas.Rectangle
	image      *canvas.Image
	nameLabel  *widget.Label
	badgeLabel *widget.Label
}

// NewCourseCard creates a card for course
func NewCourseCard(course *model.Course, onTapped func(courseID int)) *CourseCard {
	c := &CourseCard{
		course:   course,
		onTapped: onTapped,
	}
	c.ExtendBaseWidget(c)
	c.createUI()
	return c
}

// createUI builds the card components
func (c *CourseCard) createUI() {
	c.background = canvas.NewRectangle(themeColor(ColorNameCardBackground))
	c.background.CornerRadius = CardCornerRadius
	c.background.StrokeWidth = CardBorderWidth

	c.image = canvas.NewImageFromResource(theme.FolderIcon())
	c.image.FillMode = canvas.ImageFillContain
	c.image.SetMinSize(fyne.NewSize(CardWidth, CardThumbnailHeight))

	c.nameLabel = widget.NewLabel(c.course.Name)
	c.nameLabel.TextStyle = fyne.TextStyle{Bold: true}
	c.nameLabel.Alignment = fyne.TextAlignCenter
	c.nameLabel.Truncation = fyne.TextTruncateEllipsis

	c.badgeLabel = widget.NewLabel(c.BadgeText())
	c.badgeLabel.Alignment = fyne.TextAlignCenter

	c.applySelection()
}

// CreateRenderer implements fyne.Widget
func (c *CourseCard) CreateRenderer() fyne.WidgetRenderer {
	content := container.NewBorder(c.image, c.badgeLabel, nil, nil, c.nameLabel)
	return widget.NewSimpleRenderer(container.NewStack(c.background, container.NewPadded(content)))
}

// Tapped implements fyne.Tappable
func (c *CourseCard) Tapped(*fyne.PointEvent) {
	if c.onTapped != nil {
		c.onTapped(c.course.ID)
	}
}

// CourseID returns the id of the displayed course
func (c *CourseCard) CourseID() int {
	return c.course.ID
}

// BadgeText returns the file count label
func (c *CourseCard) BadgeText() string {
	return model.FileBadge(c.course.FileCount())
}

// IsSelected reports whether the card is highlighted
func (c *CourseCard) IsSelected() bool {
	return c.selected
}

// SetSelected highlights or clears the card
func (c *CourseCard) SetSelected(selected bool) {
	if c.selected == selected {
		return
	}
	c.selected = selected
	c.applySelection()
	c.Refresh()
}

// SetThumbnail replaces the placeholder image
func (c *CourseCard) SetThumbnail(res fyne.Resource) {
	c.image.Resource = res
	c.image.Refresh()
}

func (c *CourseCard) applySelection() {
	if c.selected {
		c.background.StrokeColor = themeColor(ColorNameCardSelected)
		c.nameLabel.Importance = widget.HighImportance
	} else {
		c.background.StrokeColor = themeColor(theme.ColorNameSeparator)
		c.nameLabel.Importance = widget.MediumImportance
	}
	c.background.Refresh()
	c.nameLabel.Refresh()
}
