package entity

import (
	"encoding/hex"
	"strings"

	"credential/internal/errors"
)

// PasswordRecordSeparator joins the salt and the derived key of a stored password.
const PasswordRecordSeparator = "."

// ErrMalformedPasswordRecord is returned when a stored record is not "<salt-hex>.<hash-hex>".
var ErrMalformedPasswordRecord = errors.New("malformed password record")

// NewPasswordRecord joins a hex salt and a hex hash into a stored password record.
func NewPasswordRecord(saltHex, hashHex string) string {
	return saltHex + PasswordRecordSeparator + hashHex
}

// ParsePasswordRecord splits a stored record into its salt and hash components.
// Both components must be non-empty hex strings.
func ParsePasswordRecord(record string) (saltHex, hashHex string, err error) {
	parts := strings.Split(record, PasswordRecordSeparator)
	if len(parts) != 2 {
		return "", "", errors.Wrapf(ErrMalformedPasswordRecord, "expected 2 components, got %d", len(parts))
	}

	for _, part := range parts {
		if part == "" {
			return "", "", errors.Wrap(ErrMalformedPasswordRecord, "empty component")
		}
		if _, err := hex.DecodeString(part); err != nil {
			return "", "", errors.Wrap(ErrMalformedPasswordRecord, "component is not hex")
		}
	}

	return parts[0], parts[1], nil
}
