package archive

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Item identifiers are limited to ASCII alphanumerics, underscores, dashes,
// and periods. The first character must be alphanumeric, and identifiers may
// not exceed 100 characters.
var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateIdentifier reports whether ident is a syntactically valid item
// identifier. Returns nil when valid.
func ValidateIdentifier(ident string) error {
	return validation.Validate(ident,
		validation.Required,
		validation.Length(1, 100),
		validation.Match(identifierPattern).
			Error("must start with an alphanumeric character and contain only alphanumerics, '_', '-', or '.'"),
	)
}
