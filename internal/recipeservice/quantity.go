package recipeservice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const ToTaste = "to taste"

// Quantity is an ingredient amount: a number, or "to taste".
type Quantity struct {
	Value   float64
	ToTaste bool
}

var (
	unitRX     = regexp.MustCompile(`(?i)(?:cup|tablespoon|teaspoon|tbsp|tsp|oz|pound|lb|ml|g)s?\b`)
	mixedRX    = regexp.MustCompile(`(\d+)\s+(\d+)\s*/\s*(\d+)`)
	fractionRX = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*/\s*(\d+(?:\.\d+)?)`)
	numberRX   = regexp.MustCompile(`\d+(?:\.\d+)?|\.\d+`)
)

// glyphInputs expands unicode vulgar fractions before parsing.
var glyphInputs = strings.NewReplacer(
	"¼", " 1/4", "½", " 1/2", "¾", " 3/4",
	"⅓", " 1/3", "⅔", " 2/3",
	"⅕", " 1/5", "⅖", " 2/5", "⅗", " 3/5", "⅘", " 4/5",
	"⅙", " 1/6", "⅚", " 5/6",
	"⅛", " 1/8", "⅜", " 3/8", "⅝", " 5/8", "⅞", " 7/8",
)

// glyphOutputs are the fractions rendered as glyphs, in match order.
var glyphOutputs = []struct {
	value float64
	glyph string
}{
	{0.25, "¼"},
	{0.5, "½"},
	{0.75, "¾"},
	{0.333, "⅓"},
	{0.667, "⅔"},
	{0.2, "⅕"},
	{0.4, "⅖"},
	{0.6, "⅗"},
	{0.8, "⅘"},
}

// NormalizeQuantity turns a free-form quantity such as "1 1/2 cups" into a
// number. Anything containing "to taste" stays symbolic; anything
// unparseable becomes 0.
func NormalizeQuantity(raw string) Quantity {
	s := strings.ToLower(strings.TrimSpace(raw))

	if strings.Contains(s, ToTaste) {
		return Quantity{ToTaste: true}
	}

	s = unitRX.ReplaceAllString(s, "")
	s = glyphInputs.Replace(s)
	s = strings.Join(strings.Fields(s), " ")

	// mixed numbers first, "1 1/2" also contains the fraction "1/2"
	if m := mixedRX.FindStringSubmatch(s); m != nil {
		whole, _ := strconv.ParseFloat(m[1], 64)
		if v, ok := divide(m[2], m[3]); ok {
			return Quantity{Value: whole + v}
		}
		return Quantity{}
	}

	if m := fractionRX.FindStringSubmatch(s); m != nil {
		if v, ok := divide(m[1], m[2]); ok {
			return Quantity{Value: v}
		}
		return Quantity{}
	}

	if m := numberRX.FindString(s); m != "" {
		v, err := strconv.ParseFloat(m, 64)
		if err == nil {
			return Quantity{Value: v}
		}
	}

	return Quantity{}
}

func divide(numerator, denominator string) (float64, bool) {
	n, err := strconv.ParseFloat(numerator, 64)
	if err != nil {
		return 0, false
	}

	d, err := strconv.ParseFloat(denominator, 64)
	if err != nil || d == 0 {
		return 0, false
	}

	return n / d, true
}

// Format renders the quantity for display: "to taste", an integer, a
// fraction glyph with an optional whole part, or two decimals.
func (q Quantity) Format() string {
	if q.ToTaste {
		return ToTaste
	}

	v := q.Value
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	if v > 0 {
		whole := math.Floor(v)
		frac := v - whole

		for _, g := range glyphOutputs {
			if math.Abs(frac-g.value) < 0.01 {
				if whole == 0 {
					return g.glyph
				}
				return fmt.Sprintf("%d %s", int(whole), g.glyph)
			}
		}
	}

	return strconv.FormatFloat(v, 'f', 2, 64)
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	if q.ToTaste {
		return json.Marshal(ToTaste)
	}
	return json.Marshal(q.Value)
}

// UnmarshalJSON keeps numbers as they are and normalizes strings.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		*q = Quantity{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*q = NormalizeQuantity(s)
		return nil
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("quantity must be a number or a string: %w", err)
		}
		*q = Quantity{Value: f}
		return nil
	}
}

// Number accepts a JSON number or a string starting with one, e.g. "4" or "30 minutes".
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		m := numberRX.FindString(s)
		if m == "" {
			return fmt.Errorf("%q is not a number", s)
		}

		f, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return err
		}
		*n = Number(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

// FlexibleString accepts a JSON string or number, so {"time": 30} and {"time": "30"} are equal.
type FlexibleString string

func (f *FlexibleString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		*f = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexibleString(strings.TrimSpace(s))
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("must be a string or a number: %w", err)
		}
		*f = FlexibleString(n.String())
		return nil
	}
}
