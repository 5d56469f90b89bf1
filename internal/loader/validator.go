package loader

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Validator checks a set of required variables. Assertions are chainable
// and failures collect until Err is called.
type Validator struct {
	repo  Repository
	names []string
	errs  []error
}

// Required starts a Validator and records a failure for every name that is
// not set in repo.
func Required(repo Repository, names ...string) *Validator {
	v := &Validator{repo: repo, names: names}
	var missing []string
	for _, name := range names {
		if _, ok := repo.Lookup(name); !ok {
			missing = append(missing, name+" is missing")
		}
	}
	v.fail(missing)
	return v
}

func (v *Validator) fail(failing []string) {
	if len(failing) > 0 {
		v.errs = append(v.errs, fmt.Errorf("One or more environment variables failed assertions: %s.", strings.Join(failing, ", ")))
	}
}

// assert records a failure for every set name whose value does not
// satisfy ok. Missing names were already reported by Required.
func (v *Validator) assert(message string, ok func(string) bool) *Validator {
	var failing []string
	for _, name := range v.names {
		if value, set := v.repo.Lookup(name); set && !ok(value) {
			failing = append(failing, name+" "+message)
		}
	}
	v.fail(failing)
	return v
}

// NotEmpty fails for values that are empty or only whitespace.
func (v *Validator) NotEmpty() *Validator {
	return v.assert("is empty", func(s string) bool {
		return strings.TrimSpace(s) != ""
	})
}

// IsInteger fails for values that are not base 10 integers.
func (v *Validator) IsInteger() *Validator {
	return v.assert("is not an integer", func(s string) bool {
		_, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		return err == nil
	})
}

// IsBoolean accepts true/false, yes/no, on/off and 1/0 in any case.
func (v *Validator) IsBoolean() *Validator {
	return v.assert("is not a boolean", func(s string) bool {
		_, ok := ParseBool(s)
		return ok
	})
}

// AllowedValues fails for values not in choices.
func (v *Validator) AllowedValues(choices ...string) *Validator {
	return v.assert("is not one of ["+strings.Join(choices, ", ")+"]", func(s string) bool {
		return slices.Contains(choices, s)
	})
}

// AllowedRegexValues fails for values that pattern does not match in full.
func (v *Validator) AllowedRegexValues(pattern string) *Validator {
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		v.errs = append(v.errs, fmt.Errorf("invalid pattern %q: %w", pattern, err))
		return v
	}
	return v.assert("does not match "+pattern, re.MatchString)
}

// Err returns the collected failures joined, or nil.
func (v *Validator) Err() error {
	return errors.Join(v.errs...)
}

// ParseBool reads the boolean spellings accepted by IsBoolean.
func ParseBool(s string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, true
	case "false", "no", "off", "0":
		return false, true
	}
	return false, false
}
