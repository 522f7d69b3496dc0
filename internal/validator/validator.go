package validator

import (
	"reflect"
	"strings"

	"github.com/careerforge/assessment-engine/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator wraps the struct validator with the custom rules the engine needs.
type Validator struct {
	structValidator *validator.Validate
}

// New creates a new validator instance with all custom rules registered.
func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator: structValidator,
	}
}

// Validate validates struct tags on the given value.
func (v *Validator) Validate(s interface{}) error {
	return v.structValidator.Struct(s)
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("difficulty_level", validateDifficultyLevel)
	validate.RegisterValidation("test_type", validateTestType)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateDifficultyLevel(fl validator.FieldLevel) bool {
	validLevels := []models.DifficultyLevel{
		models.DifficultyBeginner,
		models.DifficultyIntermediate,
		models.DifficultyAdvanced,
	}

	value := fl.Field().String()
	for _, validLevel := range validLevels {
		if string(validLevel) == value {
			return true
		}
	}
	return false
}

func validateTestType(fl validator.FieldLevel) bool {
	validTypes := []models.TestType{
		models.TestTypeStandard,
		models.TestTypeCustom,
	}

	value := fl.Field().String()
	for _, validType := range validTypes {
		if string(validType) == value {
			return true
		}
	}
	return false
}
