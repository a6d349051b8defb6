package validator

import (
	"regexp"
	"strings"

	"talent-portal/internal/user/model"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// Phone numbers must be in international format: '+xxx...'.
var phoneRegex = regexp.MustCompile(`^\+\d{8,16}$`)

func init() {
	validate = validator.New()

	err := validate.RegisterValidation("user_role", validateUserRole)
	if err != nil {
		return
	}
	err = validate.RegisterValidation("phone", validatePhone)
	if err != nil {
		return
	}
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateUserRole(fl validator.FieldLevel) bool {
	return model.RoleSet{model.Role(fl.Field().String())}.Valid()
}

func validatePhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

func IsValidEmail(email string) bool {
	email = strings.TrimSpace(strings.ToLower(email))
	re := regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
	return re.MatchString(email)
}
