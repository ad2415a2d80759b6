package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaperProfile is the structured printer paper profile set in the print
// configuration. It replaces substring matching on the free-text printer
// name; Unspecified keeps legacy configs working through the name heuristic.
type PaperProfile int

const (
	PaperProfileUnspecified PaperProfile = 0
	PaperProfileThermal58   PaperProfile = 1
	PaperProfileThermal80   PaperProfile = 2
	PaperProfileA4          PaperProfile = 3
)

func (p PaperProfile) String() string {
	names := [...]string{"Unspecified", "Thermal58", "Thermal80", "A4"}
	if int(p) < 0 || int(p) >= len(names) {
		return "Unspecified"
	}
	return names[p]
}

// IsThermal reports whether the profile targets a thermal printer.
func (p PaperProfile) IsThermal() bool {
	return p == PaperProfileThermal58 || p == PaperProfileThermal80
}

// Width returns the character width of a thermal line, 0 for page profiles.
func (p PaperProfile) Width() int {
	switch p {
	case PaperProfileThermal58:
		return 32
	case PaperProfileThermal80:
		return 48
	}
	return 0
}

func (p PaperProfile) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *PaperProfile) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*p = PaperProfile(i)
		return nil
	}
	switch str {
	case "Thermal58":
		*p = PaperProfileThermal58
	case "Thermal80":
		*p = PaperProfileThermal80
	case "A4":
		*p = PaperProfileA4
	default:
		*p = PaperProfileUnspecified
	}
	return nil
}

func (p PaperProfile) Value() (driver.Value, error) {
	return int64(p), nil
}

func (p *PaperProfile) Scan(value interface{}) error {
	if value == nil {
		*p = PaperProfileUnspecified
		return nil
	}
	switch v := value.(type) {
	case int64:
		*p = PaperProfile(v)
	case int:
		*p = PaperProfile(v)
	}
	return nil
}
