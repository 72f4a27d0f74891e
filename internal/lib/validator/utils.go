package validator

import (
	"fmt"
	"reflect"
	"strings"

	"cinevault/proj/internal/utils"

	govalidator "github.com/go-playground/validator/v10"
)

func getFieldName(obj any, origFieldName string) (fieldName string) {
	t := reflect.TypeOf(obj)
	field, found := t.FieldByName(origFieldName)
	if !found {
		panic(fmt.Sprintf("Field %s not found in type %s", origFieldName, t.Name()))
	}
	if tag := field.Tag.Get("json"); tag != "" && tag != "-" {
		jsonName := strings.Split(tag, ",")[0]
		if jsonName != "" {
			fieldName = jsonName
		}
	} else {
		fieldName = utils.CamelToSnake(origFieldName)
	}
	return
}

func ProcessValidationErrors(obj any, errs govalidator.ValidationErrors) map[string]string {
	processedErrors := make(map[string]string)
	for _, e := range errs {
		processedErrors[getFieldName(obj, e.StructField())] = GetErrorMsgForField(obj, e)
	}
	return processedErrors
}

func ValidateStruct(validator *govalidator.Validate, obj any) (validationErrs map[string]string) {
	if err := validator.Struct(obj); err != nil {
		validationErrs = ProcessValidationErrors(obj, err.(govalidator.ValidationErrors))
	}
	return
}

func GetErrorMsgForField(obj any, err govalidator.FieldError) (errorMsg string) {
	t := reflect.TypeOf(obj)
	field, found := t.FieldByName(err.StructField())
	if !found {
		panic(fmt.Sprintf("Field %s not found in type %s", err.StructField(), t.Name()))
	}
	errorMsg = field.Tag.Get("errorMsg")
	if errorMsg == "" {
		switch err.Tag() {
		case "required":
			errorMsg = "This field is required"
		case "max":
			errorMsg = fmt.Sprintf("The maximum value is %s", err.Param())
		case "min":
			errorMsg = fmt.Sprintf("The minimum value is %s", err.Param())
		case "gte":
			errorMsg = fmt.Sprintf("Value should be greater than or equal to %s", err.Param())
		case "lte":
			errorMsg = fmt.Sprintf("Value should be less than or equal to %s", err.Param())
		case "email":
			errorMsg = "Value must be a valid email address"
		case "url":
			errorMsg = "Value must be a valid URL"
		case "alphanum":
			errorMsg = "Value must be alphanumeric"
		default:
			errorMsg = "This field is invalid"
		}
	}
	return
}
