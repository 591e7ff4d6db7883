package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,sha1hex"`
}

func TestSha1HexRule(t *testing.T) {
	Init()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	good := signupPayload{
		Email:    "a@example.com",
		Name:     "Ann",
		Password: "8535a1e56a5592a83a49ab43be3a6e8d78366eea",
	}
	assert.NoError(t, v.Struct(good))

	bad := good
	bad.Password = "ABC123" // wrong length and alphabet
	err := v.Struct(bad)
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "must be a 40-character lowercase hex digest", details["password"])
}

func TestToDetailsRequired(t *testing.T) {
	Init()
	v := binding.Validator.Engine().(*validator.Validate)

	err := v.Struct(signupPayload{})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "is required", details["email"])
	assert.Equal(t, "is required", details["name"])
	assert.Equal(t, "is required", details["password"])
}
