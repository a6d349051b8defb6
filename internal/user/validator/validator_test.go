package validator

import (
	"testing"

	"talent-portal/internal/user/model"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegisterRequest(t *testing.T) {
	valid := &model.RegisterRequest{
		Email:     "user@example.com",
		Password:  "pAssw0rd!",
		Firstname: "Jane",
		Lastname:  "Doe",
	}
	assert.NoError(t, ValidateStruct(valid))

	missingEmail := &model.RegisterRequest{
		Password:  "pAssw0rd!",
		Firstname: "Jane",
		Lastname:  "Doe",
	}
	assert.Error(t, ValidateStruct(missingEmail))

	shortPassword := &model.RegisterRequest{
		Email:     "user@example.com",
		Password:  "short",
		Firstname: "Jane",
		Lastname:  "Doe",
	}
	assert.Error(t, ValidateStruct(shortPassword))

	badRole := &model.RegisterRequest{
		Email:     "user@example.com",
		Password:  "pAssw0rd!",
		Firstname: "Jane",
		Lastname:  "Doe",
		Roles:     []string{"WIZARD"},
	}
	assert.Error(t, ValidateStruct(badRole))
}

func TestValidatePhoneFormat(t *testing.T) {
	good := "+12345678901"
	request := &model.RegisterRequest{
		Email:     "user@example.com",
		Password:  "pAssw0rd!",
		Firstname: "Jane",
		Lastname:  "Doe",
		Phone:     &good,
	}
	assert.NoError(t, ValidateStruct(request))

	bad := "12345"
	request.Phone = &bad
	assert.Error(t, ValidateStruct(request))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("user@example.com"))
	assert.True(t, IsValidEmail("  USER@EXAMPLE.COM "))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("user@"))
	assert.False(t, IsValidEmail(""))
}
