package match

import "testing"

func TestExtractBaseDomain(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"https://www.example.com/products", "example.com", true},
		{"http://example.com", "example.com", true},
		{"example.com/path", "example.com", true},
		{"www.Example.CO.UK/products", "example.co.uk", true},
		{"https://shop.example.com.au", "example.com.au", true},
		{"https://sub.tief.example.de/kontakt", "example.de", true},
		{"https://example.com:8080/x", "example.com", true},
		{"", "", false},
		{"   ", "", false},
		{"https://exa mple.com", "", false},
	}
	for _, tc := range cases {
		got, ok := ExtractBaseDomain(tc.in)
		if ok != tc.ok {
			t.Fatalf("ExtractBaseDomain(%q) ok = %v, want %v", tc.in, ok, tc.ok)
		}
		if got != tc.want {
			t.Fatalf("ExtractBaseDomain(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExtractBaseDomainEquivalentForms(t *testing.T) {
	t.Parallel()

	a, okA := ExtractBaseDomain("https://www.example.com/x")
	b, okB := ExtractBaseDomain("example.com")
	if !okA || !okB {
		t.Fatalf("expected both extractions to succeed: %v %v", okA, okB)
	}
	if a != b {
		t.Fatalf("www/path variants must extract equal domains: %q != %q", a, b)
	}
}
