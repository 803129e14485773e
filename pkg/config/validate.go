package config

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/surveycharts/pkg/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and cross-field rules.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, formatValidationError(err), "invalid config")
	}
	if c.Roles.Width <= 2*c.Roles.PagePadding {
		return errors.New(errors.ErrCodeInvalidConfig, "roles.width must exceed twice roles.page_padding")
	}
	if c.Roles.Height <= 2*c.Roles.PagePadding+c.Roles.YRoleOffset {
		return errors.New(errors.ErrCodeInvalidConfig, "roles.height leaves no room below the role row")
	}
	if c.Orgs.Width < 2*(c.Orgs.Padding+c.Orgs.RadiusOrg) {
		return errors.New(errors.ErrCodeInvalidConfig, "orgs.width must fit two org circles")
	}
	if c.Publish.Target != "" {
		if _, err := errors.ParseS3Target(c.Publish.Target); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "publish.target")
		}
	}
	return nil
}

// formatValidationError reports the first failing field by its namespace,
// e.g. "Config.Roles.Width: must be greater than 0".
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	e := verrs[0]
	field := strings.TrimPrefix(e.Namespace(), "Config.")
	switch e.Tag() {
	case "required", "required_if":
		return fmt.Errorf("%s: field is required", field)
	case "gt":
		return fmt.Errorf("%s: must be greater than %s", field, e.Param())
	case "gte":
		return fmt.Errorf("%s: must be at least %s", field, e.Param())
	case "lt":
		return fmt.Errorf("%s: must be less than %s", field, e.Param())
	case "lte":
		return fmt.Errorf("%s: must not exceed %s", field, e.Param())
	case "oneof":
		return fmt.Errorf("%s: must be one of [%s]", field, e.Param())
	case "gtfield", "gtefield":
		return fmt.Errorf("%s: must be greater than %s", field, e.Param())
	default:
		return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
	}
}
