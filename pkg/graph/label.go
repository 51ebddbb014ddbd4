package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Label is a vertex identifier read from a graph file. Files may name
// vertices with numbers or strings; Label keeps whether it was numeric, so 1
// and "1" are different vertices. Numbers are stored in canonical form:
// 1, 1.0 and 1e0 are the same vertex, written back as 1.
//
// Label is comparable and can be used as the vertex type of a [Graph].
type Label struct {
	text    string
	numeric bool
}

// StringLabel returns a string-valued label.
func StringLabel(s string) Label { return Label{text: s} }

// IntLabel returns a numeric label.
func IntLabel(n int64) Label { return Label{text: strconv.FormatInt(n, 10), numeric: true} }

// LabelOf converts a decoded JSON or TOML scalar into a Label. Supported
// inputs are strings, integers, finite floats and json.Number.
func LabelOf(v any) (Label, error) {
	switch x := v.(type) {
	case Label:
		return x, nil
	case string:
		return StringLabel(x), nil
	case int:
		return IntLabel(int64(x)), nil
	case int64:
		return IntLabel(x), nil
	case float64:
		return floatLabel(x)
	case json.Number:
		return numberLabel(x.String())
	default:
		return Label{}, fmt.Errorf("unsupported vertex id type %T", v)
	}
}

// numberLabel parses numeric text into its canonical label.
func numberLabel(text string) (Label, error) {
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return IntLabel(n), nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Label{}, fmt.Errorf("vertex id %s is not a number: %w", text, err)
	}
	return floatLabel(f)
}

// floatLabel formats integral values in int64 range as integers and every
// other finite value in shortest 'g' form.
func floatLabel(f float64) (Label, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return Label{}, fmt.Errorf("vertex id %v is not finite", f)
	}
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return IntLabel(int64(f)), nil
	}
	return Label{text: strconv.FormatFloat(f, 'g', -1, 64), numeric: true}, nil
}

// String returns the label text.
func (l Label) String() string { return l.text }

// IsNumeric reports whether the label was spelled as a number.
func (l Label) IsNumeric() bool { return l.numeric }

// MarshalJSON writes numeric labels as JSON numbers and others as strings.
func (l Label) MarshalJSON() ([]byte, error) {
	if l.numeric {
		return []byte(l.text), nil
	}
	return json.Marshal(l.text)
}

// UnmarshalJSON accepts a JSON string or number.
func (l *Label) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("vertex id must be a string or number")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = StringLabel(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("vertex id must be a string or number: %w", err)
	}
	v, err := numberLabel(n.String())
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Value returns the label as a plain scalar: int64 for integral numeric
// labels, float64 for other numeric labels and string otherwise.
func (l Label) Value() any {
	if !l.numeric {
		return l.text
	}
	if n, err := strconv.ParseInt(l.text, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(l.text, 64); err == nil {
		return f
	}
	return l.text
}
