package validators

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

const (
	TagHTTPURL = "httpurl"
	TagHasAt   = "hasat"
)

// Register installs the custom tags used by the resource rules.
func Register(validate *validator.Validate) {
	_ = validate.RegisterValidation(TagHTTPURL, HTTPURL)
	_ = validate.RegisterValidation(TagHasAt, HasAt)
}

// HTTPURL accepts strings starting with http:// or https://.
func HTTPURL(fl validator.FieldLevel) bool {
	val, ok := stringField(fl)
	if !ok || val == "" {
		return false
	}
	return strings.HasPrefix(val, "http://") || strings.HasPrefix(val, "https://")
}

// HasAt is the deliberately loose e-mail check: any non-empty string with an '@'.
func HasAt(fl validator.FieldLevel) bool {
	val, ok := stringField(fl)
	if !ok {
		return false
	}
	return strings.Contains(val, "@")
}

func stringField(fl validator.FieldLevel) (string, bool) {
	field := fl.Field()
	if field.Kind() != reflect.String {
		log.Warnf("string validator applied to non-string type: %s", field.Kind().String())
		return "", false
	}
	return field.String(), true
}
