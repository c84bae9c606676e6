package v1

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"kairopay/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const MAX_PAGE_LIMIT = 100
const DEFAULT_PAGE_LIMIT = 50

// bindAndValidate unmarshals the body and runs struct validation. Writes
// the error response itself; returns false when the caller should bail.
func bindAndValidate(c *gin.Context, data any) bool {
	err := c.ShouldBindJSON(data)
	if err != nil {
		respondBadRequest(c, "")
		return false
	}

	v := validator.New()
	v.RegisterValidation("webhook", validateWebhook)

	err = v.Struct(data)
	if err == nil {
		return true
	}

	validationErrs, castErr := utils.SafeCast[validator.ValidationErrors](err)
	if castErr != nil || len(validationErrs) == 0 {
		respondBadRequest(c, "")
		return false
	}

	respondBadRequest(c, formatValidationErr(data, validationErrs[0]))
	return false
}

func validateWebhook(fl validator.FieldLevel) bool {
	if fl.Field().String() == "" { // webhook is optional
		return true
	}

	if len(fl.Field().String()) <= 8 {
		return false
	}
	if !strings.HasPrefix(fl.Field().String(), "http://") && !strings.HasPrefix(fl.Field().String(), "https://") {
		return false
	}
	if !strings.Contains(fl.Field().String(), ".") { // has dot
		return false
	}

	_, err := url.ParseRequestURI(fl.Field().String())
	return err == nil
}

func formatValidationErr(data any, err validator.FieldError) string {
	jsonTag := getJSONTag(data, err.StructField())

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("field '%s' is required", jsonTag)
	case "oneof":
		return fmt.Sprintf("field '%s' must be one of '%s'", jsonTag, err.Param())
	case "min":
		return fmt.Sprintf("field '%s' must be at least %s characters long", jsonTag, err.Param())
	case "max":
		return fmt.Sprintf("field '%s' must be at most %s characters long", jsonTag, err.Param())
	case "gt":
		return fmt.Sprintf("field '%s' must be greater than %s", jsonTag, err.Param())
	case "webhook":
		return fmt.Sprintf("field '%s' must be a valid http(s) url", jsonTag)
	default:
		return fmt.Sprintf("invalid field '%s'", jsonTag)
	}
}

func getJSONTag(structType any, fieldName string) string {
	typ := reflect.TypeOf(structType)
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	field, ok := typ.FieldByName(fieldName)
	if !ok {
		return fieldName
	}
	tag := strings.Split(field.Tag.Get("json"), ",")[0]
	if tag == "" {
		return fieldName
	}
	return tag
}

// parsePagination clamps limit to [1,100] (default 50) and offset to >= 0.
// Garbage values fall back to the defaults rather than erroring.
func parsePagination(c *gin.Context) (limit, offset int) {
	limit = DEFAULT_PAGE_LIMIT
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil {
			limit = parsed
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MAX_PAGE_LIMIT {
		limit = MAX_PAGE_LIMIT
	}

	if raw := c.Query("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
