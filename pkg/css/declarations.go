package css

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Declaration is a single "name: value" pair.
type Declaration struct {
	Name  string
	Value string
}

// String formats the declaration as it appears in a style attribute.
func (d Declaration) String() string { return d.Name + ":" + d.Value + ";" }

// Declarations is an ordered set of CSS declarations. Names are unique;
// setting an existing name replaces its value in place.
type Declarations []Declaration

// Get returns the value for name and whether it was present.
func (ds Declarations) Get(name string) (string, bool) {
	for _, d := range ds {
		if d.Name == name {
			return d.Value, true
		}
	}
	return "", false
}

// Has reports whether name is declared.
func (ds Declarations) Has(name string) bool {
	_, ok := ds.Get(name)
	return ok
}

// Set replaces the value of name, or appends it when absent.
func (ds *Declarations) Set(name, value string) {
	for i := range *ds {
		if (*ds)[i].Name == name {
			(*ds)[i].Value = value
			return
		}
	}
	*ds = append(*ds, Declaration{Name: name, Value: value})
}

// Delete removes name if present.
func (ds *Declarations) Delete(name string) {
	for i := range *ds {
		if (*ds)[i].Name == name {
			*ds = append((*ds)[:i], (*ds)[i+1:]...)
			return
		}
	}
}

// Clone returns an independent copy.
func (ds Declarations) Clone() Declarations {
	if ds == nil {
		return nil
	}
	out := make(Declarations, len(ds))
	copy(out, ds)
	return out
}

// String joins all declarations into a style attribute value.
func (ds Declarations) String() string {
	var b strings.Builder
	for _, d := range ds {
		b.WriteString(d.String())
	}
	return b.String()
}

// MarshalJSON encodes the declarations as an object in declaration order.
func (ds Declarations) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range ds {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(d.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(d.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts either an object of name/value pairs (order kept)
// or an array of raw attribute lines.
func (ds *Declarations) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*ds = nil
		return nil
	}

	if data[0] == '[' {
		var lines []string
		if err := json.Unmarshal(data, &lines); err != nil {
			return fmt.Errorf("css attribute lines: %w", err)
		}
		*ds = ParseAttributes(lines)
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("css: expected object or array, got %v", tok)
	}

	var out Declarations
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("css: unexpected key %v", tok)
		}
		var raw any
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("css %s: %w", name, err)
		}
		switch v := raw.(type) {
		case nil:
			// null values mean "not set"
		case string:
			out.Set(name, v)
		case float64:
			out.Set(name, formatNumber(v))
		case bool:
			out.Set(name, fmt.Sprint(v))
		default:
			return fmt.Errorf("css %s: unsupported value %v", name, v)
		}
	}
	*ds = out
	return nil
}

func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
