package validation

import (
	"fmt"
	"sort"

	"github.com/go-viper/mapstructure/v2"

	"github.com/kbukum/healthreg/errors"
	"github.com/kbukum/healthreg/healthcheck"
)

type valueKind int

const (
	kindString valueKind = iota
	kindNumber
	kindBool
	kindStringOrBool
	kindStringArray
)

func (k valueKind) String() string {
	switch k {
	case kindString:
		return "string"
	case kindNumber:
		return "number"
	case kindBool:
		return "boolean"
	case kindStringOrBool:
		return "string or boolean"
	case kindStringArray:
		return "array of strings"
	}
	return "unknown"
}

// sensuSchema lists the typed properties of a Sensu declaration. Properties
// not listed are accepted as is.
var sensuSchema = map[string]valueKind{
	healthcheck.FieldName:            kindString,
	healthcheck.FieldInterval:        kindNumber,
	"realert_every":                  kindNumber,
	"timeout":                        kindNumber,
	"occurrences":                    kindNumber,
	"refresh":                        kindNumber,
	"alert_after":                    kindNumber,
	"tip":                            kindStringOrBool,
	"runbook":                        kindStringOrBool,
	"standalone":                     kindBool,
	"aggregate":                      kindBool,
	"ticketing_enabled":              kindBool,
	"paging_enabled":                 kindBool,
	"project":                        kindBool,
	"page":                           kindBool,
	"team":                           kindString,
	"override_notification_settings": kindString,
	"sla":                            kindString,
	"notification_email":             kindStringArray,
	"override_notification_email":    kindStringArray,
	"override_chat_channel":          kindStringArray,
}

// sensuRequired are the properties every Sensu declaration must carry.
var sensuRequired = []string{healthcheck.FieldName, healthcheck.FieldInterval}

// checkSchema validates property types and required properties of a Sensu
// declaration.
func checkSchema(decl healthcheck.Declaration) *errors.AppError {
	v := New(decl.ID)
	v.Required(decl, sensuRequired...)

	keys := make([]string, 0, len(decl.Fields))
	for k := range decl.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		kind, ok := sensuSchema[key]
		if !ok {
			continue
		}
		if !hasKind(decl.Fields[key], kind) {
			v.AddError(key, fmt.Sprintf("Health check '%s' property '%s' must be of type %s, found %#v", decl.ID, key, kind, decl.Fields[key]))
		}
	}
	return v.Validate()
}

func hasKind(value any, kind valueKind) bool {
	switch kind {
	case kindString:
		_, ok := value.(string)
		return ok
	case kindNumber:
		return isNumber(value)
	case kindBool:
		_, ok := value.(bool)
		return ok
	case kindStringOrBool:
		return hasKind(value, kindString) || hasKind(value, kindBool)
	case kindStringArray:
		items, ok := value.([]any)
		if !ok {
			return false
		}
		for _, item := range items {
			if _, ok := item.(string); !ok {
				return false
			}
		}
		return true
	}
	return false
}

func isNumber(value any) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	}
	return false
}

func toFloat(value any) float64 {
	switch n := value.(type) {
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	}
	return 0
}

// decodeOptions maps the typed properties of a declaration onto SensuOptions.
// Properties outside the type table, such as script_arguments, decode weakly
// so a numeric argument becomes its string form.
func decodeOptions(decl healthcheck.Declaration) (healthcheck.SensuOptions, error) {
	var opts healthcheck.SensuOptions
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &opts,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return opts, err
	}
	if err := dec.Decode(decl.Fields); err != nil {
		return opts, errors.Validation(decl.ID, fmt.Sprintf("Health check '%s' has invalid properties", decl.ID)).WithCause(err)
	}
	return opts, nil
}
