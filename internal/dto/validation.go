package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/lshigami/ojtportal/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := RegisterValidations(v); err != nil {
		panic(err)
	}
	return v
}

// RegisterValidations adds the custom rules used by feedback payloads. It is
// also applied to gin's binding engine at startup.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation("likert", func(fl validator.FieldLevel) bool {
		return IsLikert(fl.Field().String())
	})
}

func IsLikert(value string) bool {
	switch value {
	case model.LikertStronglyAgree, model.LikertAgree, model.LikertNeutral,
		model.LikertDisagree, model.LikertStronglyDisagree:
		return true
	}
	return false
}

// Validate checks a decoded multipart payload against its validate tags.
func Validate(payload interface{}) error {
	return validate.Struct(payload)
}

// ValidationDetails flattens validator errors into readable strings.
func ValidationDetails(err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, fe.Namespace()+" failed on '"+fe.Tag()+"'")
	}
	return details
}
