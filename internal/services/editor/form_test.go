package editor

import (
	"context"
	"errors"
	"testing"

	"github.com/killallgit/fieldguide-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestNewAdd(t *testing.T) {
	t.Run("blank", func(t *testing.T) {
		f := NewAdd(nil)
		assert.Equal(t, ModeAdd, f.Mode)
		assert.Equal(t, "#ffffff", f.Color)
		assert.Zero(t, f.Weight)
		assert.Empty(t, f.Tags)
		assert.Nil(t, f.Latitude)
		assert.False(t, f.CanSubmit())
	})

	t.Run("prefilled with summary", func(t *testing.T) {
		f := NewAdd(&models.PlaceSelection{
			Name:     "Lighthouse",
			Address:  "4902 Beacon Ln",
			Summary:  "Historic light station",
			Lat:      48.39,
			Lng:      -124.73,
			PhotoURL: "https://img/lh.jpg",
		})
		assert.Equal(t, "Lighthouse", f.Name)
		assert.Equal(t, "Historic light station", f.Description)
		assert.Equal(t, 48.39, *f.Latitude)
		assert.Equal(t, -124.73, *f.Longitude)
		assert.Equal(t, "https://img/lh.jpg", f.ThumbnailURL)
		assert.Equal(t, "#ffffff", f.Color)
		assert.True(t, f.CanSubmit())
	})

	t.Run("prefilled without summary uses address", func(t *testing.T) {
		f := NewAdd(&models.PlaceSelection{Name: "Cafe", Address: "12 Main St"})
		assert.Equal(t, "12 Main St", f.Description)
	})
}

func TestNewEdit(t *testing.T) {
	b := &models.Bookmark{
		ID:          "b1",
		Name:        "Tide Pools",
		Description: ptr("anemones"),
		Latitude:    ptr(47.6),
		Longitude:   ptr(-122.4),
		Color:       "#a3c4f3",
		Weight:      20,
		Tags:        []models.BookmarkTag{{Tag: "beach"}, {Tag: "kids"}},
	}

	f := NewEdit(b)
	assert.Equal(t, ModeEdit, f.Mode)
	assert.Equal(t, "b1", f.BookmarkID)
	assert.Equal(t, "Tide Pools", f.Name)
	assert.Equal(t, "anemones", f.Description)
	assert.Equal(t, "#a3c4f3", f.Color)
	assert.Equal(t, 20, f.Weight)
	assert.Equal(t, []string{"beach", "kids"}, f.Tags)
	assert.Empty(t, f.ThumbnailURL)

	// editing the form must not touch the bookmark
	*f.Latitude = 0
	assert.Equal(t, 47.6, *b.Latitude)
}

func TestForm_TagInput(t *testing.T) {
	tests := []struct {
		name  string
		typed []string
		want  []string
		input string
	}{
		{name: "comma then space", typed: []string{"Cabin, "}, want: []string{"cabin"}, input: " "},
		{name: "enter", typed: []string{"Cabin\n"}, want: []string{"cabin"}},
		{name: "typed twice", typed: []string{"cabin\n", "cabin\n"}, want: []string{"cabin"}},
		{name: "case insensitive duplicate", typed: []string{"Hike,", " HIKE ,"}, want: []string{"hike"}},
		{name: "several in one go", typed: []string{"hike,dog-friendly,\n"}, want: []string{"hike", "dog-friendly"}},
		{name: "blank commits nothing", typed: []string{" ,\n,"}, want: []string{}},
		{name: "no delimiter stays buffered", typed: []string{"Cab", "in"}, want: []string{}, input: "Cabin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewAdd(nil)
			for _, s := range tt.typed {
				f.TypeTagInput(s)
			}
			assert.Equal(t, tt.want, f.Tags)
			assert.Equal(t, tt.input, f.TagInput)
		})
	}
}

func TestForm_AddTagCommitsBuffer(t *testing.T) {
	f := NewAdd(nil)
	f.TypeTagInput("  Waterfall ")
	f.AddTag()
	assert.Equal(t, []string{"waterfall"}, f.Tags)
	assert.Empty(t, f.TagInput)

	f.TypeTagInput("waterfall")
	f.AddTag()
	assert.Equal(t, []string{"waterfall"}, f.Tags)
	assert.Empty(t, f.TagInput)
}

func TestForm_RemoveTagAndSuggestions(t *testing.T) {
	f := NewAdd(nil)
	f.TypeTagInput("hike,beach,")

	all := []string{"beach", "camp", "hike", "view"}
	assert.Equal(t, []string{"camp", "view"}, f.Suggestions(all))

	f.AddSuggestion("camp")
	assert.Equal(t, []string{"hike", "beach", "camp"}, f.Tags)
	assert.Equal(t, []string{"view"}, f.Suggestions(all))

	f.RemoveTag("beach")
	f.RemoveTag("missing")
	assert.Equal(t, []string{"hike", "camp"}, f.Tags)
	assert.Equal(t, []string{"beach", "view"}, f.Suggestions(all))
}

func TestForm_Color(t *testing.T) {
	tests := []struct {
		input       string
		wantStored  string
		wantPreview string
	}{
		{input: "abc123", wantStored: "#abc123", wantPreview: "#abc123"},
		{input: "#ABC123", wantStored: "#ABC123", wantPreview: "#ABC123"},
		{input: "zzz", wantStored: "#zzz", wantPreview: "#ffffff"},
		{input: "#12345", wantStored: "#12345", wantPreview: "#ffffff"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f := NewAdd(nil)
			f.SetColor(tt.input)
			assert.Equal(t, tt.wantStored, f.Color)
			assert.Equal(t, tt.wantPreview, f.ColorPreview())
		})
	}

	t.Run("stored value is never corrected", func(t *testing.T) {
		f := NewAdd(nil)
		f.Color = "zzz"
		assert.Equal(t, "#ffffff", f.ColorPreview())
		assert.Equal(t, "zzz", f.Color)
	})
}

func TestForm_Presets(t *testing.T) {
	assert.Len(t, PresetColors, 10)

	f := NewAdd(nil)
	f.SetColor(PresetColors[3])
	assert.Equal(t, "#F1C0E8", f.ActivePreset())

	f.SetColor("#f1c0e8")
	assert.Equal(t, "#F1C0E8", f.ActivePreset())

	f.SetColor("#000000")
	assert.Empty(t, f.ActivePreset())
}

func TestForm_Placeholder(t *testing.T) {
	f := NewAdd(nil)
	assert.Equal(t, "?", f.Placeholder())
	f.Name = "lighthouse"
	assert.Equal(t, "L", f.Placeholder())
}

func TestForm_Patch(t *testing.T) {
	f := NewAdd(&models.PlaceSelection{Name: "Lighthouse", Lat: 48, Lng: -124})

	Patch{Name: ptr("Light Station"), Color: ptr("b9fbc0"), Weight: ptr(5)}.Apply(f)
	assert.Equal(t, "Light Station", f.Name)
	assert.Equal(t, "#b9fbc0", f.Color)
	assert.Equal(t, 5, f.Weight)
	assert.Equal(t, 48.0, *f.Latitude)

	Patch{ClearLatitude: true, ClearLongitude: true}.Apply(f)
	assert.Nil(t, f.Latitude)
	assert.Nil(t, f.Longitude)

	Patch{Latitude: ptr(47.1)}.Apply(f)
	assert.Equal(t, 47.1, *f.Latitude)
	assert.Nil(t, f.Longitude)
}

func TestForm_Submit(t *testing.T) {
	t.Run("trims and clears saving", func(t *testing.T) {
		f := NewAdd(nil)
		f.Name = "  Lighthouse  "
		f.Description = " notes "
		f.ThumbnailURL = " https://img "
		f.TypeTagInput("hike,")

		var got models.BookmarkForm
		err := f.Submit(context.Background(), func(ctx context.Context, form models.BookmarkForm) error {
			assert.True(t, f.Saving)
			assert.False(t, f.CanSubmit())
			got = form
			return nil
		})
		require.NoError(t, err)
		assert.False(t, f.Saving)
		assert.Equal(t, "Lighthouse", got.Name)
		assert.Equal(t, "notes", got.Description)
		assert.Equal(t, "https://img", got.ThumbnailURL)
		assert.Equal(t, []string{"hike"}, got.Tags)
	})

	t.Run("failure clears saving", func(t *testing.T) {
		f := NewAdd(nil)
		f.Name = "Lighthouse"
		boom := errors.New("boom")
		err := f.Submit(context.Background(), func(context.Context, models.BookmarkForm) error { return boom })
		assert.ErrorIs(t, err, boom)
		assert.False(t, f.Saving)
		assert.True(t, f.CanSubmit())
	})

	t.Run("blank name is blocked", func(t *testing.T) {
		f := NewAdd(nil)
		f.Name = "   "
		called := false
		err := f.Submit(context.Background(), func(context.Context, models.BookmarkForm) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, ErrSubmitBlocked)
		assert.False(t, called)
	})

	t.Run("saving is blocked", func(t *testing.T) {
		f := NewAdd(nil)
		f.Name = "Lighthouse"
		f.Saving = true
		err := f.Submit(context.Background(), func(context.Context, models.BookmarkForm) error { return nil })
		assert.ErrorIs(t, err, ErrSubmitBlocked)
	})
}

func TestForm_BeginFinish(t *testing.T) {
	f := NewAdd(nil)
	f.Name = " Lighthouse "

	values, err := f.Begin()
	require.NoError(t, err)
	assert.Equal(t, "Lighthouse", values.Name)
	assert.True(t, f.Saving)

	_, err = f.Begin()
	assert.ErrorIs(t, err, ErrSubmitBlocked)

	f.Finish()
	assert.False(t, f.Saving)
}

func TestForm_Clone(t *testing.T) {
	f := NewAdd(&models.PlaceSelection{Name: "Lighthouse", Lat: 48, Lng: -124})
	f.TypeTagInput("hike,")

	c := f.Clone()
	c.RemoveTag("hike")
	*c.Latitude = 1

	assert.Equal(t, []string{"hike"}, f.Tags)
	assert.Equal(t, 48.0, *f.Latitude)
}
