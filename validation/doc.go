// Package validation checks health-check definition sets before anything is
// submitted to a backend.
//
// Two styles are used side by side. Programmatic rules collect per-field
// errors for one check:
//
//	v := validation.New(checkID)
//	v.Required(decl, "name").Pattern("name", name, namePattern)
//	err := v.Validate()
//
// Struct tag rules (go-playground/validator) cover decoded option structs:
//
//	err := validation.ValidateStruct(checkID, &opts)
//
// SetValidator combines both with script resolution and produces typed
// checks for each backend.
package validation
