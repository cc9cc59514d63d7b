package model

// FallbackLocalReference is used when a place has no usable hierarchy field.
const FallbackLocalReference = "your area"

// Place is a resolved location: coordinates plus the address hierarchy
// recovered by reverse geocoding. Unknown hierarchy fields are "".
type Place struct {
	Latitude       float64 `json:"latitude" yaml:"latitude"`
	Longitude      float64 `json:"longitude" yaml:"longitude"`
	FormattedLabel string  `json:"formatted_label" yaml:"formatted_label"`
	Road           string  `json:"road" yaml:"road"`
	Neighborhood   string  `json:"neighborhood" yaml:"neighborhood"`
	Suburb         string  `json:"suburb" yaml:"suburb"`
	City           string  `json:"city" yaml:"city"`
	County         string  `json:"county" yaml:"county"`
	State          string  `json:"state" yaml:"state"`
}

// Hierarchy returns the locality fields from most to least specific.
func (p Place) Hierarchy() []string {
	return []string{p.Neighborhood, p.Suburb, p.City, p.County, p.State}
}

// LocalReference returns the most specific non-empty locality name, or
// FallbackLocalReference when the place has none.
func (p Place) LocalReference() string {
	for _, loc := range p.Hierarchy() {
		if loc != "" {
			return loc
		}
	}
	return FallbackLocalReference
}
