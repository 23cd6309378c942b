package voice

import "testing"

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Leite Integral", "leite integral"},
		{"PÃO DE FORMA", "pao de forma"},
		{"açúcar", "acucar"},
		{"Feijão!!", "feijao"},
		{"  maçã   verde  ", "maca verde"},
		{"Coca-Cola 2L", "coca cola 2l"},
		{"água c/ gás", "agua c gas"},
		{"...", ""},
		{"", ""},
		{"arroz", "arroz"},
	}
	for _, tt := range tests {
		got := NormalizeText(tt.input)
		if got != tt.want {
			t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeTextIdempotent(t *testing.T) {
	inputs := []string{"Leite Integral", "PÃO DE FORMA", "Coca-Cola 2L", "água c/ gás"}
	for _, input := range inputs {
		once := NormalizeText(input)
		twice := NormalizeText(once)
		if once != twice {
			t.Errorf("NormalizeText not idempotent on %q: %q != %q", input, once, twice)
		}
	}
}

func TestTokens(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"Bananas e Tomates", []string{"banana", "e", "tomate"}},
		{"arroz branco", []string{"arroz", "branco"}},
		{"", nil},
		{"!!!", nil},
	}
	for _, tt := range tests {
		got := tokens(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("tokens(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("tokens(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}
