package site

import (
	"net/url"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var (
	slugPattern     = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)
	absolutePattern = regexp.MustCompile(`^/`)
)

// Validate checks the shape of every non-empty field. Fields are independently
// optional, so an empty value always passes.
func (s Site) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.BaseURL,
			validation.Match(absolutePattern).Error("must be empty or start with /"),
		),
		validation.Field(&s.Config),
	)
}

// Validate checks the nested metadata block.
func (c Settings) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.DomainName, is.Host),
		validation.Field(&c.Timezone, validation.By(validateTimezone)),
		validation.Field(&c.SiteURL, validation.By(validateAbsoluteURL)),
		validation.Field(&c.RootPath,
			validation.Match(absolutePattern).Error("must start with /"),
		),
		validation.Field(&c.RepositorySlug,
			validation.Match(slugPattern).Error("must be in owner/repo format"),
		),
		validation.Field(&c.AuthorLink, validation.By(validateAbsoluteURL)),
	)
}

func validateTimezone(value interface{}) error {
	tz, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}
	if tz == "" {
		return nil
	}

	if _, err := time.LoadLocation(tz); err != nil {
		return validation.NewError("validation_invalid_timezone", "must be an IANA timezone name")
	}

	return nil
}

func validateAbsoluteURL(value interface{}) error {
	raw, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}
	if raw == "" {
		return nil
	}

	parsedURL, err := url.Parse(raw)
	if err != nil {
		return validation.NewError("validation_invalid_url", "must be a valid URL")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return validation.NewError("validation_invalid_scheme", "URL must use http or https scheme")
	}

	if parsedURL.Host == "" {
		return validation.NewError("validation_missing_host", "URL must have a host")
	}

	return nil
}
