package editor

// Patch is a partial update of the form's fields. Nil fields are left
// alone; ClearLatitude and ClearLongitude empty a coordinate.
type Patch struct {
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	ThumbnailURL   *string  `json:"thumbnail_url"`
	Color          *string  `json:"color"`
	Weight         *int     `json:"weight"`
	Latitude       *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude      *float64 `json:"longitude" validate:"omitempty,longitude"`
	ClearLatitude  bool     `json:"clear_latitude"`
	ClearLongitude bool     `json:"clear_longitude"`
}

// Apply copies the set fields onto f
func (p Patch) Apply(f *Form) {
	if p.Name != nil {
		f.Name = *p.Name
	}
	if p.Description != nil {
		f.Description = *p.Description
	}
	if p.ThumbnailURL != nil {
		f.ThumbnailURL = *p.ThumbnailURL
	}
	if p.Color != nil {
		f.SetColor(*p.Color)
	}
	if p.Weight != nil {
		f.Weight = *p.Weight
	}
	if p.Latitude != nil {
		f.Latitude = copyFloat(p.Latitude)
	}
	if p.Longitude != nil {
		f.Longitude = copyFloat(p.Longitude)
	}
	if p.ClearLatitude {
		f.Latitude = nil
	}
	if p.ClearLongitude {
		f.Longitude = nil
	}
}
