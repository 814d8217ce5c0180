// Package editor implements the add/edit bookmark form: field state,
// tag entry, color preview and submission.
package editor

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/killallgit/fieldguide-api/internal/models"
	"github.com/killallgit/fieldguide-api/internal/services/tags"
)

// Mode tells whether the form creates or updates a bookmark
type Mode string

const (
	ModeAdd  Mode = "add"
	ModeEdit Mode = "edit"
)

var (
	// ErrSubmitBlocked is returned when the name is blank or a save is in flight
	ErrSubmitBlocked = errors.New("form cannot be submitted")

	hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

// PresetColors are the one-click swatches under the color input
var PresetColors = []string{
	"#FBF8CC", "#FDE4CF", "#FFCFD2", "#F1C0E8", "#CFBAF0",
	"#A3C4F3", "#90DBF4", "#8EECF5", "#98F5E1", "#B9FBC0",
}

// SaveFunc persists the submitted values
type SaveFunc func(ctx context.Context, form models.BookmarkForm) error

// Form is the editor's state. Fields hold raw user input; trimming and
// normalization happen on submit.
type Form struct {
	Mode         Mode     `json:"mode"`
	BookmarkID   string   `json:"bookmark_id,omitempty"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Color        string   `json:"color"`
	ThumbnailURL string   `json:"thumbnail_url"`
	Weight       int      `json:"weight"`
	Tags         []string `json:"tags"`
	TagInput     string   `json:"tag_input"`
	Saving       bool     `json:"saving"`
}

// NewAdd opens an add form, pre-filled from a place when one was selected
func NewAdd(prefill *models.PlaceSelection) *Form {
	f := &Form{
		Mode:  ModeAdd,
		Color: models.DefaultColor,
		Tags:  []string{},
	}
	if prefill != nil {
		lat, lng := prefill.Lat, prefill.Lng
		f.Name = prefill.Name
		f.Description = prefill.Notes()
		f.Latitude = &lat
		f.Longitude = &lng
		f.ThumbnailURL = prefill.PhotoURL
	}
	return f
}

// NewEdit opens an edit form pre-filled from b
func NewEdit(b *models.Bookmark) *Form {
	values := models.FormFromBookmark(b)
	f := &Form{
		Mode:         ModeEdit,
		BookmarkID:   b.ID,
		Name:         values.Name,
		Description:  values.Description,
		Latitude:     copyFloat(values.Latitude),
		Longitude:    copyFloat(values.Longitude),
		Color:        values.Color,
		ThumbnailURL: values.ThumbnailURL,
		Weight:       values.Weight,
		Tags:         values.Tags,
	}
	return f
}

// TypeTagInput appends typed text to the tag input. A comma or newline
// commits whatever precedes it, as the Enter and comma keys do.
func (f *Form) TypeTagInput(text string) {
	for _, r := range text {
		switch r {
		case ',', '\n', '\r':
			f.AddTag()
		default:
			f.TagInput += string(r)
		}
	}
}

// AddTag commits the tag input buffer and clears it. Blank and duplicate
// tags are dropped.
func (f *Form) AddTag() {
	f.addTag(f.TagInput)
	f.TagInput = ""
}

// AddSuggestion adds an existing tag with one click
func (f *Form) AddSuggestion(tag string) {
	f.addTag(tag)
}

func (f *Form) addTag(raw string) {
	tag := tags.Normalize(raw)
	if tag == "" || f.HasTag(tag) {
		return
	}
	f.Tags = append(f.Tags, tag)
}

// RemoveTag drops tag from the pending set
func (f *Form) RemoveTag(tag string) {
	kept := f.Tags[:0]
	for _, t := range f.Tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	f.Tags = kept
}

// HasTag reports whether tag is pending
func (f *Form) HasTag(tag string) bool {
	for _, t := range f.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Suggestions returns allTags minus the ones already on the form
func (f *Form) Suggestions(allTags []string) []string {
	out := make([]string, 0, len(allTags))
	for _, t := range allTags {
		if !f.HasTag(t) {
			out = append(out, t)
		}
	}
	return out
}

// SetColor stores the color input, adding the leading # when missing
func (f *Form) SetColor(v string) {
	if !strings.HasPrefix(v, "#") {
		v = "#" + v
	}
	f.Color = v
}

// ColorPreview is the swatch color: the stored value when it is a six
// digit hex color, otherwise the default.
func (f *Form) ColorPreview() string {
	if hexColor.MatchString(f.Color) {
		return f.Color
	}
	return models.DefaultColor
}

// ActivePreset returns the preset matching the current color, or ""
func (f *Form) ActivePreset() string {
	for _, c := range PresetColors {
		if strings.EqualFold(c, f.Color) {
			return c
		}
	}
	return ""
}

// Placeholder is the letter shown when there is no thumbnail
func (f *Form) Placeholder() string {
	return models.Initial(f.Name)
}

// CanSubmit reports whether the submit button is enabled
func (f *Form) CanSubmit() bool {
	return !f.Saving && strings.TrimSpace(f.Name) != ""
}

// Values returns the submission with text fields trimmed
func (f *Form) Values() models.BookmarkForm {
	return models.BookmarkForm{
		Name:         strings.TrimSpace(f.Name),
		Description:  strings.TrimSpace(f.Description),
		Latitude:     copyFloat(f.Latitude),
		Longitude:    copyFloat(f.Longitude),
		Color:        f.Color,
		ThumbnailURL: strings.TrimSpace(f.ThumbnailURL),
		Weight:       f.Weight,
		Tags:         append([]string(nil), f.Tags...),
	}
}

// Submit hands the trimmed values to save. Saving is set for the duration
// of the call and cleared whether or not it succeeds.
func (f *Form) Submit(ctx context.Context, save SaveFunc) error {
	values, err := f.Begin()
	if err != nil {
		return err
	}
	defer f.Finish()
	return save(ctx, values)
}

// Begin marks the form as saving and returns the values to persist. Callers
// that save without holding the form must call Finish afterwards.
func (f *Form) Begin() (models.BookmarkForm, error) {
	if !f.CanSubmit() {
		return models.BookmarkForm{}, ErrSubmitBlocked
	}
	f.Saving = true
	return f.Values(), nil
}

// Finish clears the saving flag
func (f *Form) Finish() {
	f.Saving = false
}

// Clone returns a deep copy of the form
func (f *Form) Clone() *Form {
	c := *f
	c.Latitude = copyFloat(f.Latitude)
	c.Longitude = copyFloat(f.Longitude)
	c.Tags = append([]string{}, f.Tags...)
	return &c
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
