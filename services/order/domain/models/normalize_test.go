package models

import "testing"

func TestTitleCase(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase words", "tech supply co.", "Tech Supply Co."},
		{"uppercase words", "TECH SUPPLY CO.", "Tech Supply Co."},
		{"mixed case", "tEcH sUpPlY", "Tech Supply"},
		{"already title case", "Tech Supply Co.", "Tech Supply Co."},
		{"leading and trailing spaces", "  auto parts  ", "Auto Parts"},
		{"inner spacing preserved", "auto   parts", "Auto   Parts"},
		{"single word", "brembo", "Brembo"},
		{"empty string", "", ""},
		{"only spaces", "   ", ""},
		{"unicode word", "škoda parts", "Škoda Parts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TitleCase(tt.input); got != tt.want {
				t.Fatalf("TitleCase(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTitleCase_Idempotent(t *testing.T) {
	inputs := []string{"tech supply co.", "TECH SUPPLY CO.", "Brake Pads", "  spaced  out  "}
	for _, in := range inputs {
		once := TitleCase(in)
		twice := TitleCase(once)
		if once != twice {
			t.Fatalf("TitleCase not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestTrimText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"leading and trailing", "  brake pads  ", "brake pads"},
		{"inner casing preserved", "  Golf IV 1.9 TDI ", "Golf IV 1.9 TDI"},
		{"empty", "", ""},
		{"only spaces", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimText(tt.input); got != tt.want {
				t.Fatalf("TrimText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{"exact", 322.40, 322.40},
		{"round down", 10.114, 10.11},
		{"round up", 10.115, 10.12},
		{"float artifact", 0.1 + 0.2, 0.30},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Round2(tt.input); got != tt.want {
				t.Fatalf("Round2(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"canonical lowercase", "123e4567-e89b-12d3-a456-426614174000", true},
		{"uppercase hex", "123E4567-E89B-12D3-A456-426614174000", true},
		{"empty", "", false},
		{"demo residue", "demo-1", false},
		{"missing dashes", "123e4567e89b12d3a456426614174000", false},
		{"too short", "123e4567-e89b-12d3-a456-42661417400", false},
		{"non-hex characters", "123e4567-e89b-12d3-a456-42661417400g", false},
		{"braces not accepted", "{123e4567-e89b-12d3-a456-426614174000}", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidID(tt.input); got != tt.want {
				t.Fatalf("ValidID(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
