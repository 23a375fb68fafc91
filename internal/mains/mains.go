// Package mains infers the local electrical mains frequency, used to place
// the hum notch filter without asking the user where they recorded.
package mains

import (
	"strings"

	tz "github.com/medama-io/go-timezone-country"
	"github.com/thlib/go-timezone-local/tzlocal"
)

// DefaultHz is used whenever the local region cannot be determined. 50 Hz
// covers most of the world.
const DefaultHz = 50.0

// Detect returns the mains frequency of the machine's locale in Hz.
func Detect() float64 {
	zone, err := tzlocal.RuntimeTZ()
	if err != nil {
		return DefaultHz
	}
	return ForTimezone(zone)
}

// ForTimezone returns the mains frequency for an IANA timezone name.
func ForTimezone(zone string) float64 {
	// UTC and the Etc/ zones carry no country information.
	if zone == "UTC" || zone == "GMT" || strings.HasPrefix(zone, "Etc/") {
		return DefaultHz
	}

	countries, err := tz.NewTimezoneCountryMap()
	if err != nil {
		return DefaultHz
	}
	country, err := countries.GetCountry(zone)
	if err != nil {
		return DefaultHz
	}
	if sixtyHzCountries[country] {
		return 60
	}
	// Japan is split between 50 and 60 Hz grids; the 50 Hz Tokyo grid
	// covers the larger population, so it falls through to the default.
	return DefaultHz
}

// sixtyHzCountries holds the countries on a 60 Hz grid. Everywhere else,
// including mixed-grid Japan, resolves to 50 Hz.
var sixtyHzCountries = map[string]bool{
	"United States":       true,
	"Canada":              true,
	"Mexico":              true,
	"Belize":              true,
	"Costa Rica":          true,
	"El Salvador":         true,
	"Guatemala":           true,
	"Honduras":            true,
	"Nicaragua":           true,
	"Panama":              true,
	"Bahamas":             true,
	"Barbados":            true,
	"Cayman Islands":      true,
	"Cuba":                true,
	"Dominican Republic":  true,
	"Haiti":               true,
	"Jamaica":             true,
	"Puerto Rico":         true,
	"Trinidad and Tobago": true,
	"U.S. Virgin Islands": true,
	"Brazil":              true,
	"Colombia":            true,
	"Ecuador":             true,
	"Guyana":              true,
	"Peru":                true,
	"Suriname":            true,
	"Venezuela":           true,
	"South Korea":         true,
	"Taiwan":              true,
	"Philippines":         true,
	"Saudi Arabia":        true,
	"Guam":                true,
	"American Samoa":      true,
	"Marshall Islands":    true,
	"Micronesia":          true,
	"Palau":               true,
}
