// Package branding maps a free-text insurer name to a certificate theme.
package branding

import "strings"

// Theme is the visual identity used to style a certificate.
type Theme struct {
	Name           string
	PrimaryColor   string
	SecondaryColor string
}

const genericKey = "GENERIC"

// themes is keyed by the uppercased insurer name.
var themes = map[string]Theme{
	"MAPFRE":   {Name: "MAPFRE", PrimaryColor: "#E30613", SecondaryColor: "#FFFFFF"},
	"ALLIANZ":  {Name: "Allianz", PrimaryColor: "#003781", SecondaryColor: "#FFFFFF"},
	"AXA":      {Name: "AXA", PrimaryColor: "#00008F", SecondaryColor: "#FFFFFF"},
	"OCCIDENT": {Name: "Occident", PrimaryColor: "#E6007E", SecondaryColor: "#FFFFFF"},
	genericKey: {Name: "Seguros Global", PrimaryColor: "#3b82f6", SecondaryColor: "#FFFFFF"},
}

// brands lists the named insurers, in a stable order.
var brands = []string{"MAPFRE", "ALLIANZ", "AXA", "OCCIDENT"}

// Generic returns the fallback theme.
func Generic() Theme {
	return themes[genericKey]
}

// Resolve returns the theme for insurerName.
//
// An empty name yields the generic theme. A known name (case-insensitive)
// yields its fixed theme. Any other name keeps the generic colors but shows
// the caller's text as the insurer name; it is not checked against any catalog.
func Resolve(insurerName string) Theme {
	name := strings.TrimSpace(insurerName)
	if name == "" {
		return Generic()
	}
	if t, ok := themes[strings.ToUpper(name)]; ok {
		return t
	}
	t := Generic()
	t.Name = name
	return t
}

// Known reports whether insurerName matches a named insurer.
func Known(insurerName string) bool {
	key := strings.ToUpper(strings.TrimSpace(insurerName))
	if key == "" || key == genericKey {
		return false
	}
	_, ok := themes[key]
	return ok
}

// Brands returns the keys of the named insurers.
func Brands() []string {
	out := make([]string, len(brands))
	copy(out, brands)
	return out
}
