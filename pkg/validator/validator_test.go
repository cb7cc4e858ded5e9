package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateRegister_Valid(t *testing.T) {
	errs := ValidateRegister("jake@jake.jake", "Jacob", "jakejake")
	require.False(t, errs.HasErrors(), "got %v", errs)
}

func TestValidateRegister_MissingFields(t *testing.T) {
	errs := ValidateRegister("", "", "")
	require.Contains(t, errs, "email")
	require.Contains(t, errs, "username")
	require.Contains(t, errs, "password")
}

func TestValidateRegister_BadValues(t *testing.T) {
	errs := ValidateRegister("not-an-email", "a", "short")
	require.Equal(t, []string{"is invalid"}, errs["email"])
	require.Equal(t, []string{"must be at least 3 characters"}, errs["username"])
	require.Equal(t, []string{"must be at least 8 characters"}, errs["password"])
}

func TestValidateRegister_UsernameCharset(t *testing.T) {
	errs := ValidateRegister("jake@jake.jake", "bad name!", "jakejake")
	require.Contains(t, errs, "username")
}

func TestValidateLogin(t *testing.T) {
	require.False(t, ValidateLogin("jake@jake.jake", "jakejake").HasErrors())

	errs := ValidateLogin("", "")
	require.Contains(t, errs, "email")
	require.Contains(t, errs, "password")
}

func TestValidateUpdate_OnlyPresentFields(t *testing.T) {
	require.False(t, ValidateUpdate(nil, nil, nil).HasErrors())

	bad := "nope"
	errs := ValidateUpdate(&bad, nil, nil)
	require.Contains(t, errs, "email")
	require.NotContains(t, errs, "username")
	require.NotContains(t, errs, "password")

	short := "abc"
	errs = ValidateUpdate(nil, nil, &short)
	require.Contains(t, errs, "password")
}
