package domain

import (
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestContactCity(t *testing.T) {
	tests := []struct {
		name    string
		address *string
		want    string
	}{
		{"full address", strPtr("12 Baker Street, London"), "London"},
		{"extra spaces", strPtr("5th Avenue ,  New York "), "New York"},
		{"no comma", strPtr("Springfield"), "Springfield"},
		{"trailing comma", strPtr("Elm Street,"), ""},
		{"no address", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Contact{Address: tt.address}
			if got := c.City(); got != tt.want {
				t.Errorf("City() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContactCloneIsDeep(t *testing.T) {
	bd := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	original := Contact{
		ID:           1,
		FirstName:    "Ada",
		LastName:     "Lovelace",
		PrimaryPhone: "5551234567",
		Email:        strPtr("ada@example.com"),
		Birthdate:    &bd,
		Address:      strPtr("10 Downing Street, London"),
	}

	clone := original.Clone()
	*clone.Email = "changed@example.com"
	*clone.Birthdate = bd.AddDate(1, 0, 0)
	clone.FirstName = "Augusta"

	if *original.Email != "ada@example.com" {
		t.Errorf("clone edit leaked into original email: %q", *original.Email)
	}
	if !original.Birthdate.Equal(bd) {
		t.Errorf("clone edit leaked into original birthdate: %v", original.Birthdate)
	}
	if original.FirstName != "Ada" {
		t.Errorf("clone edit leaked into original name: %q", original.FirstName)
	}
	if clone.MiddleName != nil {
		t.Error("nil optional should stay nil after clone")
	}
}
