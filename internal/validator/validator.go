// Package validator checks request payloads before they reach the store.
package validator // import "github.com/Xunop/biblioteca/internal/validator"

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/Xunop/biblioteca/internal/model"
)

const maxTextLength = 255

var (
	// ErrInvalid is wrapped by every field validation failure.
	ErrInvalid = errors.New("invalid input")
	// ErrEmptyPatch is returned for a partial update without any field.
	ErrEmptyPatch = errors.New("no fields supplied for update")
)

// EmailRX is a compiled regular expression for basic email validation.
var EmailRX = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// Errors maps field names to what is wrong with them.
type Errors map[string]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e[k])
	}
	return ErrInvalid.Error() + ": " + strings.Join(parts, "; ")
}

func (e Errors) Unwrap() error {
	return ErrInvalid
}

// Validator holds a map of field names to their validation error messages.
// A Validator with an empty Errors map is considered valid.
type Validator struct {
	Errors Errors
}

// New creates and returns a fresh, empty Validator.
func New() *Validator {
	return &Validator{Errors: make(Errors)}
}

// Valid returns true if the Errors map contains no entries.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records key as failing with the given message.
// The first failure for a field is the one that is reported.
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

// Check adds an error for key with message only when ok is false.
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// Err returns the collected errors, or nil when there are none.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	return v.Errors
}

// In returns true if value is present in the list slice.
func In(value string, list ...string) bool {
	for _, item := range list {
		if value == item {
			return true
		}
	}
	return false
}

// Matches returns true if value matches the provided compiled regexp.
func Matches(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}

// ValidEmail is a format-only check, the address is never contacted.
func ValidEmail(email string) bool {
	return len(email) <= 254 && Matches(email, EmailRX)
}

// requiredText trims value in place and checks it is present and not too long.
func (v *Validator) requiredText(value *string, key string) {
	*value = strings.TrimSpace(*value)
	v.Check(*value != "", key, "must be provided")
	v.Check(utf8.RuneCountInString(*value) <= maxTextLength, key, "must not be more than 255 characters long")
}

// optionalText checks a nullable text column, nil is allowed.
func (v *Validator) optionalText(value *string, key string, max int) {
	if value == nil {
		return
	}
	*value = strings.TrimSpace(*value)
	v.Check(utf8.RuneCountInString(*value) <= max, key, "is too long")
}

// patchText checks a patched text field. Non nullable fields reject null.
func (v *Validator) patchText(o *model.Optional[string], key string, nullable bool, max int) {
	if !o.Set {
		return
	}
	if o.Null {
		v.Check(nullable, key, "must not be null")
		return
	}
	if nullable {
		v.optionalText(&o.Value, key, max)
		return
	}
	v.requiredText(&o.Value, key)
}

func (v *Validator) id(id int64, key string) {
	v.Check(id > 0, key, "must be a positive id")
}

func (v *Validator) patchID(o *model.Optional[int64], key string) {
	if !o.Set {
		return
	}
	if o.Null {
		v.AddError(key, "must not be null")
		return
	}
	v.id(o.Value, key)
}

func (v *Validator) patchNotNull(set, null bool, key string) bool {
	if set && null {
		v.AddError(key, "must not be null")
		return false
	}
	return set
}
