package links

import "testing"

func TestIsURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://example.com", true},
		{"http://example.com/path/to?q=1&r=2#top", true},
		{"www.example.com", true},
		{"hello@example.com", true},
		{"mailto:hello@example.com", true},
		{"  https://example.com  ", true},
		{"Visit https://example.com now", false},
		{"hello world", false},
		{"", false},
		{"example", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := IsURL(tt.in); got != tt.want {
				t.Errorf("IsURL(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"hello@example.com", true},
		{"first.last+tag@mail.example.org", true},
		{"https://example.com", false},
		{"@example.com", false},
		{"hello@example", false},
	}

	for _, tt := range tests {
		if got := IsEmail(tt.in); got != tt.want {
			t.Errorf("IsEmail(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHref(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://example.com", "https://example.com"},
		{"hello@example.com", "mailto:hello@example.com"},
		{"www.example.com", "http://www.example.com"},
		{"mailto:a@b.co", "mailto:a@b.co"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Href(tt.in); got != tt.want {
			t.Errorf("Href(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPolicy(t *testing.T) {
	if !ExplicitWins.AutoLink("") {
		t.Error("ExplicitWins should auto-link without a layer URL")
	}
	if ExplicitWins.AutoLink("https://example.com") {
		t.Error("ExplicitWins should not auto-link when the layer has a URL")
	}
	if !Both.AutoLink("https://example.com") {
		t.Error("Both should always auto-link")
	}

	for _, name := range []string{"explicit-wins", "both"} {
		p, err := ParsePolicy(name)
		if err != nil {
			t.Fatalf("ParsePolicy(%q): %v", name, err)
		}
		if p.String() != name {
			t.Errorf("round trip %q -> %q", name, p.String())
		}
	}
	if _, err := ParsePolicy("never"); err == nil {
		t.Error("ParsePolicy should reject unknown names")
	}
}
