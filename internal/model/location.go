// Package model defines the core data types for climate analysis.
package model

import "fmt"

// Location is a resolved place. Identity for caching purposes is the
// coordinate pair rounded to four decimal places; name, country, and
// admin region are display metadata only.
type Location struct {
	Name        string  `json:"name"`
	Country     string  `json:"country"`
	AdminRegion string  `json:"admin_region,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Population  int64   `json:"population,omitempty"`
	Timezone    string  `json:"timezone,omitempty"`
}

// DisplayName formats the location for human-readable output, e.g.
// "Paris, Île-de-France, France".
func (l Location) DisplayName() string {
	if l.AdminRegion != "" && l.AdminRegion != l.Name {
		return fmt.Sprintf("%s, %s, %s", l.Name, l.AdminRegion, l.Country)
	}
	return fmt.Sprintf("%s, %s", l.Name, l.Country)
}
