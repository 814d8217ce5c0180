package places

// Bounds is a lat/lng rectangle used to bias autocomplete results
type Bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	West  float64 `json:"west"`
	East  float64 `json:"east"`
}

// IsZero reports whether no bias is configured
func (b Bounds) IsZero() bool {
	return b == Bounds{}
}

// Suggestion is one autocomplete prediction
type Suggestion struct {
	PlaceID       string `json:"place_id"`
	Text          string `json:"text"`
	MainText      string `json:"main_text,omitempty"`
	SecondaryText string `json:"secondary_text,omitempty"`
}

// Place holds the detail fields requested through the field mask
type Place struct {
	ID               string        `json:"id"`
	DisplayName      localizedText `json:"displayName"`
	FormattedAddress string        `json:"formattedAddress"`
	EditorialSummary localizedText `json:"editorialSummary"`
	Location         *latLng       `json:"location"`
	Photos           []photo       `json:"photos"`
}

// FirstPhoto returns the resource name of the first photo, if any
func (p *Place) FirstPhoto() string {
	if len(p.Photos) == 0 {
		return ""
	}
	return p.Photos[0].Name
}

type localizedText struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode,omitempty"`
}

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type photo struct {
	Name     string `json:"name"`
	WidthPx  int    `json:"widthPx"`
	HeightPx int    `json:"heightPx"`
}

// Places API (New) wire shapes

type autocompleteRequest struct {
	Input        string        `json:"input"`
	SessionToken string        `json:"sessionToken,omitempty"`
	LanguageCode string        `json:"languageCode,omitempty"`
	LocationBias *locationBias `json:"locationBias,omitempty"`
}

type locationBias struct {
	Rectangle viewport `json:"rectangle"`
}

type viewport struct {
	Low  latLng `json:"low"`
	High latLng `json:"high"`
}

type autocompleteResponse struct {
	Suggestions []struct {
		PlacePrediction *struct {
			PlaceID          string        `json:"placeId"`
			Text             localizedText `json:"text"`
			StructuredFormat struct {
				MainText      localizedText `json:"mainText"`
				SecondaryText localizedText `json:"secondaryText"`
			} `json:"structuredFormat"`
		} `json:"placePrediction"`
	} `json:"suggestions"`
}

type photoMediaResponse struct {
	Name     string `json:"name"`
	PhotoURI string `json:"photoUri"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
