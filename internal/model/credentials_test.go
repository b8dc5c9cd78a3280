package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEmail(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		want  string
		valid bool
	}{
		{"plain", "user@example.com", "user@example.com", true},
		{"trimmed", "  user@example.com  ", "user@example.com", true},
		{"case kept", "User@Example.COM", "User@Example.COM", true},
		{"subdomain", "a.b@mail.example.co", "a.b@mail.example.co", true},
		{"empty", "", "", false},
		{"no at", "userexample.com", "", false},
		{"no domain dot", "user@example", "", false},
		{"two ats", "a@b@example.com", "", false},
		{"spaces inside", "us er@example.com", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, err := NewEmail(tc.raw)
			if tc.valid {
				assert.NoError(t, err)
				assert.Equal(t, tc.want, e.String())
			} else {
				assert.ErrorIs(t, err, ErrInvalidEmail)
			}
		})
	}
}

func TestNewPassword(t *testing.T) {
	_, err := NewPassword("short7!")
	assert.ErrorIs(t, err, ErrWeakPassword)

	p, err := NewPassword("longenough")
	assert.NoError(t, err)
	assert.Equal(t, "longenough", p.String())
}

func TestRoleAndGenderValidation(t *testing.T) {
	assert.True(t, ValidRole(RoleUser))
	assert.True(t, ValidRole(RoleAdmin))
	assert.False(t, ValidRole("OWNER"))
	assert.False(t, ValidRole("user"))

	assert.True(t, ValidGender(GenderMale))
	assert.True(t, ValidGender(GenderOther))
	assert.False(t, ValidGender("UNKNOWN"))
}
