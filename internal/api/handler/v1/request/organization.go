package request

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type CreateOrganizationRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func (req *CreateOrganizationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Slug, validation.Required, validation.Match(slugPattern)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
	)
}
