package extractor

import "testing"

func TestFixEncoding(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"right single quote", "donâ€™t", "don't"},
		{"em dash", "a â€” b", "a — b"},
		{"en dash", "2010â€“2020", "2010–2020"},
		{"left double quote", "â€œquoted", "“quoted"},
		{"ellipsis", "waitâ€¦", "wait…"},
		{"e acute", "cafÃ©", "café"},
		{"u umlaut", "Ã¼ber", "über"},
		{"cp437 en dash", "aΓÇôb", "a–b"},
		{"cp437 zero width", "aΓÇïb", "ab"},
		{"zero width space", "a​b", "ab"},
		{"bom", "\uFEFFstart", "start"},
		{"clean text untouched", "Gewone tekst.", "Gewone tekst."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FixEncoding(tt.in); got != tt.want {
				t.Errorf("FixEncoding(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFixEncoding_Idempotent(t *testing.T) {
	inputs := []string{
		"donâ€™t â€” reallyâ€¦",
		"cafÃ© Ã¼ber Ã«lan",
		"ΓÇô ΓÇö ΓÇ£",
		"already — clean 'text'…",
	}
	for _, in := range inputs {
		once := FixEncoding(in)
		twice := FixEncoding(once)
		if once != twice {
			t.Errorf("FixEncoding not idempotent for %q: once %q, twice %q", in, once, twice)
		}
	}
}
