package validate

import (
	"fmt"
	"testing"
	"time"
)

func TestIsValidName(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Ada", true},
		{"Ada Lovelace", true},
		{"José", true},
		{"Søren Kierkegaard", true},
		{"  Ada  ", true},
		{"", false},
		{"   ", false},
		{"Ada9", false},
		{"O'Brien", false},
		{"Jean-Luc", false},
	}
	for _, tt := range tests {
		if got := IsValidName(tt.in); got != tt.want {
			t.Errorf("IsValidName(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"5551234567", true},
		{"123456789012345", true},
		{"12345", false},
		{"123456789", false},
		{"1234567890123456", false},
		{"555-123-4567", false},
		{"555123456a", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidPhone(tt.in); got != tt.want {
			t.Errorf("IsValidPhone(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"a@b.c", true},
		{"ada.lovelace@example.com", true},
		{"a@b", false},
		{"@b.c", false},
		{"a@", false},
		{"a@.c", false},
		{"a@b.", false},
		{"abc.def", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidEmail(tt.in); got != tt.want {
			t.Errorf("IsValidEmail(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsValidLinkedin(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://www.linkedin.com/in/ada", true},
		{"linkedin.com/in/ada", true},
		{"https://example.com/ada", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidLinkedin(tt.in); got != tt.want {
			t.Errorf("IsValidLinkedin(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsValidMonth(t *testing.T) {
	for m := 1; m <= 12; m++ {
		if !IsValidMonth(m) {
			t.Errorf("IsValidMonth(%d) = false", m)
		}
	}
	for _, m := range []int{0, 13, -1, 100} {
		if IsValidMonth(m) {
			t.Errorf("IsValidMonth(%d) = true", m)
		}
	}
}

func TestParseBirthdate(t *testing.T) {
	got, err := ParseBirthdate("1990-06-15")
	if err != nil {
		t.Fatalf("ParseBirthdate: %v", err)
	}
	want := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseBirthdate = %v, want %v", got, want)
	}

	bad := []string{
		"15-06-1990",
		"1990/06/15",
		"1899-12-31",
		fmt.Sprintf("%d-01-01", time.Now().Year()+1),
		"1990-13-01",
		"1990-02-30",
		"",
	}
	for _, s := range bad {
		if _, err := ParseBirthdate(s); err == nil {
			t.Errorf("ParseBirthdate(%q) expected error", s)
		}
	}
}

func TestStructValidationUsesCustomTags(t *testing.T) {
	v := New()

	type form struct {
		Name  string `validate:"required,personname"`
		Phone string `validate:"omitempty,phone"`
		Email string `validate:"omitempty,contactemail"`
	}

	if err := v.Struct(form{Name: "Ada Lovelace", Phone: "5551234567"}); err != nil {
		t.Errorf("valid form rejected: %v", err)
	}
	if err := v.Struct(form{Name: "Ada Lovelace"}); err != nil {
		t.Errorf("omitempty fields should allow blanks: %v", err)
	}

	err := v.Struct(form{Name: "Ada9", Phone: "123", Email: "nope"})
	if err == nil {
		t.Fatal("invalid form accepted")
	}
	msg := Message(err)
	if msg == "" {
		t.Error("Message() should flatten validation errors")
	}
}
