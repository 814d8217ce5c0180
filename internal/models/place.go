package models

// PlaceSelection is the normalized result of a map or search interaction.
// It is never persisted; it only pre-fills the editor.
type PlaceSelection struct {
	PlaceID  string  `json:"place_id,omitempty"`
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	Summary  string  `json:"summary,omitempty"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	PhotoURL string  `json:"photo_url,omitempty"`
}

// Notes returns the text used for a new bookmark's field notes:
// the editorial summary when there is one, else the address.
func (p PlaceSelection) Notes() string {
	if p.Summary != "" {
		return p.Summary
	}
	return p.Address
}
