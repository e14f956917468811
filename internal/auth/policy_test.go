package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
	}{
		{"admin", RoleAdmin},
		{"ADMIN", RoleAdmin},
		{"  Admin ", RoleAdmin},
		{"contractor", RoleContractor},
		{"", RoleContractor},
		{"superuser", RoleContractor}, // unknown roles get least privilege
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseRole(tc.in), "ParseRole(%q)", tc.in)
	}
}

func TestCanAccess(t *testing.T) {
	cases := []struct {
		name    string
		role    Role
		isOwner bool
		want    bool
	}{
		{"admin non-owner", RoleAdmin, false, true},
		{"admin owner", RoleAdmin, true, true},
		{"contractor owner", RoleContractor, true, true},
		{"contractor non-owner", RoleContractor, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanAccess(tc.role, tc.isOwner))
		})
	}
}
