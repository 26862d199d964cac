package healthcheck

import (
	"fmt"
	"strings"
)

// Field names shared by both backends.
const (
	FieldType     = "type"
	FieldName     = "name"
	FieldInterval = "interval"
	FieldScript   = "script"
	FieldHTTP     = "http"
)

// Declaration is one check entry exactly as declared in a definition source.
type Declaration struct {
	ID     string
	Fields map[string]any
}

// Has reports whether the field is present.
func (d Declaration) Has(field string) bool {
	_, ok := d.Fields[field]
	return ok
}

// String returns a scalar field rendered as a string and whether it was present.
func (d Declaration) String(field string) (string, bool) {
	v, ok := d.Fields[field]
	if !ok || v == nil {
		return "", ok
	}
	switch t := v.(type) {
	case string:
		return t, true
	case map[string]any, []any:
		return "", true
	default:
		return fmt.Sprint(t), true
	}
}

// With returns a copy of the declaration with field set to value. The
// receiver is left untouched.
func (d Declaration) With(field string, value any) Declaration {
	fields := make(map[string]any, len(d.Fields)+1)
	for k, v := range d.Fields {
		fields[k] = v
	}
	fields[field] = value
	return Declaration{ID: d.ID, Fields: fields}
}

// Set is an ordered check-definition set. Order follows the definition source.
type Set []Declaration

// IDs returns the check ids in set order.
func (s Set) IDs() []string {
	ids := make([]string, len(s))
	for i, d := range s {
		ids[i] = d.ID
	}
	return ids
}

// Get returns the declaration with the given id.
func (s Set) Get(id string) (Declaration, bool) {
	for _, d := range s {
		if d.ID == id {
			return d, true
		}
	}
	return Declaration{}, false
}

// DuplicateIDs returns ids that collide case-insensitively, in set order.
func (s Set) DuplicateIDs() []string {
	return duplicates(s.IDs())
}

// DuplicateNames returns check names that collide case-insensitively.
// Declarations without a name are ignored.
func (s Set) DuplicateNames() []string {
	names := make([]string, 0, len(s))
	for _, d := range s {
		if name, ok := d.String(FieldName); ok && name != "" {
			names = append(names, name)
		}
	}
	return duplicates(names)
}

func duplicates(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var dups []string
	for _, v := range values {
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			dups = append(dups, v)
			continue
		}
		seen[key] = struct{}{}
	}
	return dups
}
