// Package invitecode generates the opaque shareable codes carried by
// invitation links.
package invitecode

import (
	"fmt"

	"github.com/teris-io/shortid"
)

// Generate returns a short URL-safe code. Uniqueness is ultimately
// enforced by the unique index on the invitations table.
func Generate() (string, error) {
	code, err := shortid.Generate()
	if err != nil {
		return "", fmt.Errorf("shortid.Generate -> %w", err)
	}

	return code, nil
}
