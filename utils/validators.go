package utils

import (
	"github.com/go-playground/validator/v10"
)

// PriorityTagRule accepts the five-letter priority tag ("IiCUp"): one letter
// per dimension, case carrying the high/low marker.
var PriorityTagRule validator.Func = func(fl validator.FieldLevel) bool {
	tag := fl.Field().String()
	if len(tag) != 5 {
		return false
	}
	for i := 0; i < len(tag); i++ {
		c := tag[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}
