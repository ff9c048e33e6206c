// Package plist implements ports.Decoder on top of howett.net/plist.
//
// Xcode writes project files in the OpenStep text format, but it reads XML
// and binary property lists too, and `plutil -convert` can leave a project in
// either. The decoder accepts all three and normalizes scalars to strings,
// which is the only scalar shape the pbxproj model understands: booleans
// become "1"/"0" and numbers their decimal text.
package plist

import (
	"fmt"
	"strconv"

	"howett.net/plist"
)

// Decoder implements ports.Decoder.
type Decoder struct {
	// lastFormat records the format of the most recent successful decode.
	lastFormat int
}

// NewDecoder creates a Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode parses data into its top-level dictionary.
func (d *Decoder) Decode(data []byte) (map[string]any, error) {
	var graph map[string]any
	format, err := plist.Unmarshal(data, &graph)
	if err != nil {
		return nil, fmt.Errorf("decode property list: %w", err)
	}
	if graph == nil {
		return nil, fmt.Errorf("decode property list: top level is not a dictionary")
	}
	d.lastFormat = format
	return normalize(graph).(map[string]any), nil
}

// FormatName returns the name of the format seen by the most recent decode
// (for example "OpenStep" or "XML"), or "" before any decode.
func (d *Decoder) FormatName() string {
	if d.lastFormat == 0 {
		return ""
	}
	return plist.FormatNames[d.lastFormat]
}

// normalize rewrites non-string scalars to strings, recursively.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, item := range t {
			t[k] = normalize(item)
		}
		return t
	case []any:
		for i, item := range t {
			t[i] = normalize(item)
		}
		return t
	case bool:
		if t {
			return "1"
		}
		return "0"
	case uint64:
		return strconv.FormatUint(t, 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []byte:
		return string(t)
	default:
		return v
	}
}
