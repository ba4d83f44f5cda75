package validate

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var namePattern = regexp.MustCompile(`^[\p{L} \-]+$`)

// Validator wraps go-playground/validator so echo can run struct-tag
// validation on bound request bodies.
type Validator struct {
	validate *validator.Validate
}

// New creates the request validator.
func New() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// Password checks the registration password policy and returns every unmet
// rule, not just the first one. An empty slice means the password passes.
func Password(password string) []string {
	var failures []string
	if len(password) < 8 {
		failures = append(failures, "password must be at least 8 characters")
	}
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	if !hasUpper {
		failures = append(failures, "password must contain an uppercase letter")
	}
	if !hasLower {
		failures = append(failures, "password must contain a lowercase letter")
	}
	if !hasDigit {
		failures = append(failures, "password must contain a digit")
	}
	if !hasSymbol {
		failures = append(failures, "password must contain a symbol")
	}
	return failures
}

// Name checks a first or last name: letters (including diacritics), spaces
// and hyphens only.
func Name(name string) bool {
	return name != "" && namePattern.MatchString(name)
}

// NationalID checks the national-identity format: exactly 10 digits after
// stripping separators, digits 1-2 a valid day of month, digits 3-4 a valid
// month. This is a format check only, no checksum.
func NationalID(id string) bool {
	stripped := strings.NewReplacer("-", "", " ", "").Replace(id)
	if len(stripped) != 10 {
		return false
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return false
		}
	}
	day := int(stripped[0]-'0')*10 + int(stripped[1]-'0')
	month := int(stripped[2]-'0')*10 + int(stripped[3]-'0')
	if day < 1 || day > 31 {
		return false
	}
	if month < 1 || month > 12 {
		return false
	}
	return true
}

// NormalizeNationalID strips separators so lookups and uniqueness checks see
// one canonical form.
func NormalizeNationalID(id string) string {
	return strings.NewReplacer("-", "", " ", "").Replace(id)
}
