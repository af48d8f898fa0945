package validation

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@college.ac.in",
		"tag+filter@sub.domain.org",
	}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("expected %q to be valid", email)
		}
	}

	invalid := []string{
		"",
		"plainaddress",
		"@missing-local.com",
		"missing-at.com",
		"user@",
		"a@b",
	}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("expected %q to be invalid", email)
		}
	}
}

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  hello  ", "hello"},
		{"null\x00byte", "nullbyte"},
		{"\x00\x00", ""},
		{"unchanged", "unchanged"},
	}
	for _, tt := range tests {
		if got := SanitizeString(tt.in); got != tt.want {
			t.Errorf("SanitizeString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "just a normal post", "just a normal post"},
		{"tags removed", "<b>bold</b> and <i>italic</i>", "bold and italic"},
		{"script removed with body", "<script>alert('x')</script>hello", "alert('x')hello"},
		{"nested markup", "<div><p>first</p><p>second</p></div>", "firstsecond"},
		{"trims result", "  <p> padded </p>  ", "padded"},
		{"empty input", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripHTML(tt.in); got != tt.want {
				t.Errorf("StripHTML(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidateStructFormatsErrors(t *testing.T) {
	type form struct {
		Email  string `validate:"required,email"`
		Status string `validate:"required,oneof=going maybe not_going"`
	}

	v := NewValidator()
	err := v.ValidateStruct(form{Email: "not-an-email", Status: "perhaps"})
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	fields := FormatValidationErrors(err)
	if _, ok := fields["email"]; !ok {
		t.Error("expected an error for field email")
	}
	if _, ok := fields["status"]; !ok {
		t.Error("expected an error for field status")
	}
}
