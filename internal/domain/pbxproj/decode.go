package pbxproj

import (
	"errors"
	"fmt"
	"sort"
)

// Placeholder is substituted for an always-present scalar that is missing or
// malformed, so decoding can continue.
const Placeholder = "<missing>"

// Structural decode failures. Parse aborts on any of them.
var (
	ErrNoObjects       = errors.New("project has no objects dictionary")
	ErrNoRecords       = errors.New("project objects dictionary is empty")
	ErrMalformedRecord = errors.New("record is not a dictionary with an isa tag")
	ErrMissingArray    = errors.New("required array field is missing")
	ErrBadArray        = errors.New("array field has unexpected shape")
)

// Record is one raw key/value entry of the objects dictionary, as produced by
// a property-list decoder: values are strings, []any or map[string]any.
type Record = map[string]any

// fields holds the values of one record after schema-driven decoding. Every
// schema field has an entry unless it is optional and was absent.
type fields struct {
	id   string
	vals map[string]any
}

func (f fields) str(name string) string {
	s, _ := f.vals[name].(string)
	return s
}

func (f fields) flag(name string) bool {
	b, _ := f.vals[name].(bool)
	return b
}

func (f fields) ids(name string) []string {
	l, _ := f.vals[name].([]string)
	return l
}

func (f fields) dict(name string) map[string]any {
	m, _ := f.vals[name].(map[string]any)
	return m
}

func (f fields) dicts(name string) []map[string]any {
	l, _ := f.vals[name].([]map[string]any)
	return l
}

// decodeRecord applies sc to rec. Format drift is reported to diags; only
// list fields can fail the record.
func decodeRecord(id string, rec Record, sc *schema, diags *Diagnostics) (fields, error) {
	kind := sc.kind.String()
	out := fields{id: id, vals: make(map[string]any, len(sc.fields))}

	for _, spec := range sc.fields {
		raw, present := rec[spec.name]
		if !present {
			if spec.presence == optional {
				continue
			}
			if spec.typ == typeIDList || spec.typ == typeDictList {
				return fields{}, fmt.Errorf("%s %s: field %q: %w", kind, id, spec.name, ErrMissingArray)
			}
			diags.missingField(kind, id, spec.name)
			out.vals[spec.name] = placeholderFor(spec.typ)
			continue
		}

		v, err := coerce(spec.typ, raw)
		if err != nil {
			return fields{}, fmt.Errorf("%s %s: field %q: %w", kind, id, spec.name, err)
		}
		if v == nil {
			diags.typeMismatch(kind, id, spec.name, raw)
			v = placeholderFor(spec.typ)
		}
		out.vals[spec.name] = v
	}

	checkUnknownFields(id, rec, sc, diags)
	return out, nil
}

// coerce converts a raw value to the Go shape of typ. A nil value with a nil
// error means a scalar mismatch the caller degrades; list mismatches are
// structural errors.
func coerce(typ fieldType, raw any) (any, error) {
	switch typ {
	case typeString:
		if s, ok := raw.(string); ok {
			return s, nil
		}
		return nil, nil
	case typeBool:
		s, ok := raw.(string)
		if !ok {
			return nil, nil
		}
		return s == "1", nil
	case typeDict:
		if m, ok := raw.(map[string]any); ok {
			return m, nil
		}
		return nil, nil
	case typeIDList:
		return coerceStrings(raw)
	case typeDictList:
		return coerceDicts(raw)
	}
	return nil, nil
}

func coerceStrings(raw any) ([]string, error) {
	switch l := raw.(type) {
	case []string:
		return l, nil
	case []any:
		out := make([]string, 0, len(l))
		for i, item := range l {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("item %d is %T: %w", i, item, ErrBadArray)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("value is %T: %w", raw, ErrBadArray)
}

func coerceDicts(raw any) ([]map[string]any, error) {
	l, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("value is %T: %w", raw, ErrBadArray)
	}
	out := make([]map[string]any, 0, len(l))
	for i, item := range l {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("item %d is %T: %w", i, item, ErrBadArray)
		}
		out = append(out, m)
	}
	return out, nil
}

func placeholderFor(typ fieldType) any {
	switch typ {
	case typeBool:
		return false
	case typeDict:
		return map[string]any{}
	default:
		return Placeholder
	}
}

// checkUnknownFields reports one notice per record key the schema does not
// know, in key order. The isa tag is never reported.
func checkUnknownFields(id string, rec Record, sc *schema, diags *Diagnostics) {
	var unknown []string
	for key := range rec {
		if key == isaKey || sc.known[key] {
			continue
		}
		unknown = append(unknown, key)
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		diags.unknownField(sc.kind.String(), id, key, rec[key])
	}
}
