package validator

import (
	"log"

	"lookhub/internal/models"

	"github.com/go-playground/validator/v10"
)

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-gender': мужской / женский / унисекс
	mustRegister("is-gender", validateGender)

	// 'is-colour': one of the catalog colour tags
	mustRegister("is-colour", validateColour)
}

func validateGender(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' обрабатывает пустые
	}
	return models.Gender(value).IsValid()
}

func validateColour(fl validator.FieldLevel) bool {
	return models.Colour(fl.Field().String()).IsValid()
}

func genderValues() []string {
	out := make([]string, 0, len(models.AllGenders))
	for _, g := range models.AllGenders {
		out = append(out, string(g))
	}
	return out
}

func colourValues() []string {
	out := make([]string, 0, len(models.AllColours))
	for _, c := range models.AllColours {
		out = append(out, string(c))
	}
	return out
}
