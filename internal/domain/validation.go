package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// fieldLabels are the human names of bound form fields.
var fieldLabels = map[string]string{
	"ConfirmPassword": "password confirmation",
	"StockQuantity":   "stock quantity",
	"ExpirationDate":  "expiration date",
	"HireDate":        "hire date",
	"CardNumber":      "card number",
	"ExpiryDate":      "expiry date",
	"CVC":             "CVC",
}

// dateLayouts names the datetime layouts used in binding tags.
var dateLayouts = map[string]string{
	"2006-01-02": "YYYY-MM-DD",
	"01/06":      "MM/YY",
}

func label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return strings.ToLower(field)
}

// Describe turns a binding error into one readable sentence per failed
// field. Other errors are returned as is.
func Describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeField(fe))
	}
	return strings.Join(msgs, "; ")
}

func describeField(fe validator.FieldError) string {
	name := label(fe.Field())
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be %s characters long", name, fe.Param())
	case "number":
		return name + " must contain digits only"
	case "gte":
		return name + " cannot be negative"
	case "gt":
		if fe.Param() == "0" {
			return name + " must be positive"
		}
		return fmt.Sprintf("%s must be greater than %s", name, fe.Param())
	case "eqfield":
		return "passwords do not match"
	case "email":
		return name + " is not a valid email address"
	case "datetime":
		layout, ok := dateLayouts[fe.Param()]
		if !ok {
			layout = fe.Param()
		}
		return name + " must look like " + layout
	default:
		return fmt.Sprintf("%s is invalid (%s)", name, fe.Tag())
	}
}
