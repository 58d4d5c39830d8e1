package import_targets

import (
	"net/mail"
	"strings"

	"github.com/cockroachdb/errors"
)

// normalizeEmail validates the address format and lowercases it, so that
// dedupe lookups are case-insensitive.
func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return "", errors.Newf("invalid email address %q", email)
	}
	return strings.ToLower(email), nil
}
