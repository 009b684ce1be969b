package validator

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules adds the project's domain rules to the validator.
func registerCustomRules(v *validator.Validate) error {
	// max_words=N: limits the number of space-separated tokens in a
	// string. Listing titles are capped at 4 words.
	return v.RegisterValidation("max_words", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		value := fl.Field().String()
		if value == "" {
			// Emptiness is the business of the required rule.
			return true
		}
		return len(strings.Split(value, " ")) <= limit
	})
}
