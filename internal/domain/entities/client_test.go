package entities

import "testing"

func TestNormalizeEmail(t *testing.T) {
	tests := map[string]string{
		"  Ana@Example.COM ": "ana@example.com",
		"ana@example.com":    "ana@example.com",
		"":                   "",
	}
	for in, want := range tests {
		if got := NormalizeEmail(in); got != want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestClient_FirstName(t *testing.T) {
	t.Run("first word", func(t *testing.T) {
		c := Client{Name: "  Ana  Pérez García"}
		if got := c.FirstName(); got != "Ana" {
			t.Errorf("expected Ana, got %q", got)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		if got := (Client{Name: "   "}).FirstName(); got != "" {
			t.Errorf("expected empty first name, got %q", got)
		}
	})
}
