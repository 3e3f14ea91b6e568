package dto

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("strong_password", validateStrongPassword)
}

func GetValidator() *validator.Validate {
	return validate
}

// Weak passwords rejected outright, compared case-insensitively.
var commonPasswords = map[string]struct{}{
	"password": {}, "password123": {}, "admin": {}, "admin123": {},
	"12345678": {}, "123456789": {}, "1234567890": {}, "qwerty": {},
	"qwerty123": {}, "welcome": {}, "welcome123": {}, "letmein": {},
	"monkey": {}, "dragon": {}, "master": {}, "sunshine": {},
	"princess": {}, "football": {}, "baseball": {}, "superman": {},
	"iloveyou": {}, "trustno1": {}, "abc123": {}, "password1": {},
	"passw0rd": {},
}

var (
	sequentialRunRegex = regexp.MustCompile(`(?i)(?:abc|bcd|cde|def|efg|fgh|ghi|hij|ijk|jkl|klm|lmn|mno|nop|opq|pqr|qrs|rst|stu|tuv|uvw|vwx|wxy|xyz|012|123|234|345|456|567|678|789)`)
)

// Go's regexp (RE2) has no backreferences, so the PCRE pattern `(.)\1{2,}`
// (the same character three or more times in a row) is matched by hand.
func hasRepeatedRun(s string) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if run > 0 && r == prev {
			run++
			if run >= 3 {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	return ValidatePassword(fl.Field().String()) == ""
}

// ValidatePassword applies the account password policy and returns an empty
// string when the password is acceptable, or a human-readable reason.
func ValidatePassword(password string) string {
	if len(password) < 12 {
		return "Password must be at least 12 characters long"
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}
	if !hasUpper {
		return "Password must contain at least one uppercase letter"
	}
	if !hasLower {
		return "Password must contain at least one lowercase letter"
	}
	if !hasNumber {
		return "Password must contain at least one number"
	}
	if !hasSpecial {
		return "Password must contain at least one special character"
	}

	if _, ok := commonPasswords[strings.ToLower(password)]; ok {
		return "This password is too common. Please choose a more secure password"
	}

	if sequentialRunRegex.MatchString(password) {
		return "Password cannot contain sequential characters"
	}

	if hasRepeatedRun(password) {
		return "Password cannot contain more than 2 repeated characters in a row"
	}

	return ""
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors"`
}

func FormatValidationErrors(err error) []ValidationError {
	var errors []ValidationError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			var message string

			switch fieldError.Tag() {
			case "required":
				message = fieldError.Field() + " is required"
			case "email":
				message = "Invalid email format"
			case "min":
				message = fieldError.Field() + " must be at least " + fieldError.Param() + " characters"
			case "max":
				message = fieldError.Field() + " must be at most " + fieldError.Param() + " characters"
			case "oneof":
				message = fieldError.Field() + " must be one of: " + fieldError.Param()
			case "url":
				message = fieldError.Field() + " must be a valid URL"
			case "strong_password":
				message = ValidatePassword(fieldError.Value().(string))
			default:
				message = fieldError.Field() + " is invalid"
			}

			errors = append(errors, ValidationError{
				Field:   fieldError.Field(),
				Message: message,
			})
		}
	}

	return errors
}

func CreateValidationErrorResponse(err error) ValidationErrorResponse {
	return ValidationErrorResponse{
		Code:    400,
		Message: "Validation failed",
		Errors:  FormatValidationErrors(err),
	}
}
