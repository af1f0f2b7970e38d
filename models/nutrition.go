package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NutrientAmount is the single internal representation of a nutrient
// quantity: numeric amount and unit kept as separate fields. External data
// arrives in looser shapes (bare numbers, "40 mg" strings); those are parsed
// once at the JSON boundary and never leak further in.
type NutrientAmount struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit,omitempty"`
}

var leadingNumber = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+`)

// ParseAmount extracts the leading numeric component of a value string and
// treats the remainder as a unit. Unparseable input yields a zero amount.
func ParseAmount(s string) NutrientAmount {
	s = strings.TrimSpace(s)
	m := leadingNumber.FindString(s)
	if m == "" {
		return NutrientAmount{}
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return NutrientAmount{}
	}
	return NutrientAmount{Amount: v, Unit: strings.TrimSpace(s[len(m):])}
}

// UnmarshalJSON accepts the three shapes seen in the wild: a bare number, a
// "value unit" string, or the canonical {"amount":..,"unit":..} object.
func (a *NutrientAmount) UnmarshalJSON(b []byte) error {
	var num float64
	if err := json.Unmarshal(b, &num); err == nil {
		*a = NutrientAmount{Amount: num}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*a = ParseAmount(s)
		return nil
	}
	type plain NutrientAmount
	var p plain
	if err := json.Unmarshal(b, &p); err == nil {
		*a = NutrientAmount(p)
		return nil
	}
	// Garbage counts as zero rather than poisoning the whole document.
	*a = NutrientAmount{}
	return nil
}

// NutrientMap is a free-form nutrient-name → quantity mapping as attached to
// a logged item. Keys are whatever the analysis collaborator produced; the
// aggregator normalizes them against the catalog.
type NutrientMap map[string]NutrientAmount

func (m NutrientMap) Value() (driver.Value, error) {
	if m == nil {
		m = NutrientMap{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *NutrientMap) Scan(v any) error {
	return scanJSON(v, m)
}

// StringList is a JSON-encoded []string column (meal ingredient lists).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(v any) error {
	return scanJSON(v, l)
}

func scanJSON(v, dst any) error {
	switch b := v.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(b, dst)
	case string:
		return json.Unmarshal([]byte(b), dst)
	default:
		return fmt.Errorf("unsupported column type %T", v)
	}
}
