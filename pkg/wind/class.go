package wind

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iwvelando/artillery-calculator/pkg/constants"
)

// ArtilleryClass identifies a type of artillery piece. Each class carries a
// fixed wind deviation per wind level.
type ArtilleryClass int

// Known artillery classes. The zero value is not a valid class.
const (
	ClassUnknown ArtilleryClass = iota
	Class120mm
	Class150mm
	ClassRocket
	Class300mm
)

// Classes lists every known artillery class in display order.
var Classes = []ArtilleryClass{Class120mm, Class150mm, ClassRocket, Class300mm}

var classNames = map[ArtilleryClass]string{
	Class120mm:  "120mm",
	Class150mm:  "150mm",
	ClassRocket: "rocket-artillery",
	Class300mm:  "300mm",
}

// classAliases maps accepted spellings to a class; lookups are case-insensitive.
var classAliases = map[string]ArtilleryClass{
	"120":              Class120mm,
	"120mm":            Class120mm,
	"150":              Class150mm,
	"150mm":            Class150mm,
	"rocket":           ClassRocket,
	"rocket-artillery": ClassRocket,
	"rocketartillery":  ClassRocket,
	"300":              Class300mm,
	"300mm":            Class300mm,
}

// ParseArtilleryClass resolves a class from its name or short key.
func ParseArtilleryClass(name string) (ArtilleryClass, error) {
	class, ok := classAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return ClassUnknown, fmt.Errorf("%w: %q", ErrUnknownArtilleryClass, name)
	}
	return class, nil
}

// Valid reports whether the class is one of the known classes.
func (c ArtilleryClass) Valid() bool {
	_, ok := classNames[c]
	return ok
}

// DeviationPerLevel returns the wind displacement in meters per wind level.
func (c ArtilleryClass) DeviationPerLevel() (float64, error) {
	switch c {
	case Class120mm, Class150mm, ClassRocket:
		return constants.LightDeviationPerLevel, nil
	case Class300mm:
		return constants.HeavyDeviationPerLevel, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownArtilleryClass, int(c))
	}
}

func (c ArtilleryClass) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ArtilleryClass(%d)", int(c))
}

// MarshalText encodes the class by name.
func (c ArtilleryClass) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownArtilleryClass, int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes the class from any accepted spelling.
func (c *ArtilleryClass) UnmarshalText(text []byte) error {
	class, err := ParseArtilleryClass(string(text))
	if err != nil {
		return err
	}
	*c = class
	return nil
}

// UnmarshalJSON accepts both a string and a bare number such as 120.
func (c *ArtilleryClass) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var n json.Number
		if numErr := json.Unmarshal(data, &n); numErr != nil {
			return fmt.Errorf("%w: %s", ErrUnknownArtilleryClass, string(data))
		}
		s = n.String()
	}
	return c.UnmarshalText([]byte(s))
}
