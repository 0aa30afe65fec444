package validator

import (
	v "github.com/go-playground/validator/v10"
)

// Validator is the shared struct validator instance.
var Validator = v.New()
