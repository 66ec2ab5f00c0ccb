package scraper

import (
	"testing"
)

const cardHTML = `
<div class="result-card">
  <h3 class="provider-name">  Dr. Maria
	 Santos  </h3>
  <span class="specialty">Cardiology</span>
  <a class="phone-number" href="tel:+15551234567">(555) 123-4567</a>
  <div class="practice-address">12 Main St, Springfield</div>
  <a class="profile-link" href="/providers/maria-santos">View profile</a>
</div>`

func TestExtractFields_AppliesFieldMap(t *testing.T) {
	fields, err := extractFields(cardHTML, map[string]string{
		"name":      "h3.provider-name",
		"specialty": "span.specialty",
		"phone":     "a.phone-number",
		"address":   "div.practice-address",
	})
	if err != nil {
		t.Fatalf("extractFields: %v", err)
	}

	want := map[string]string{
		"name":      "Dr. Maria Santos",
		"specialty": "Cardiology",
		"phone":     "(555) 123-4567",
		"address":   "12 Main St, Springfield",
	}
	for field, wantVal := range want {
		if fields[field] != wantVal {
			t.Errorf("field %q = %q, want %q", field, fields[field], wantVal)
		}
	}
}

func TestExtractFields_UnmatchedSelectorIsEmpty(t *testing.T) {
	fields, err := extractFields(cardHTML, map[string]string{
		"name":    "h3.provider-name",
		"website": "a.website",
	})
	if err != nil {
		t.Fatal(err)
	}
	if fields["website"] != "" {
		t.Errorf("unmatched field = %q, want empty", fields["website"])
	}
	if fields["name"] == "" {
		t.Error("matched field should still extract independently")
	}
}

func TestExtractHref_ResolvesRelativeLinks(t *testing.T) {
	got := extractHref(cardHTML, "a.profile-link", "https://doctors.example.com/find")
	want := "https://doctors.example.com/providers/maria-santos"
	if got != want {
		t.Errorf("extractHref = %q, want %q", got, want)
	}
}

func TestExtractHref_AbsoluteLinkUntouched(t *testing.T) {
	html := `<div><a class="p" href="https://other.example.com/x">x</a></div>`
	got := extractHref(html, "a.p", "https://doctors.example.com/find")
	if got != "https://other.example.com/x" {
		t.Errorf("extractHref = %q", got)
	}
}

func TestExtractHref_NoMatchIsEmpty(t *testing.T) {
	if got := extractHref(cardHTML, "a.missing", "https://doctors.example.com"); got != "" {
		t.Errorf("extractHref = %q, want empty", got)
	}
}

func TestNormalizeSpace(t *testing.T) {
	tests := []struct{ in, want string }{
		{"  a  b  ", "a b"},
		{"a\n\tb", "a b"},
		{"", ""},
		{"plain", "plain"},
	}
	for _, tc := range tests {
		if got := normalizeSpace(tc.in); got != tc.want {
			t.Errorf("normalizeSpace(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
