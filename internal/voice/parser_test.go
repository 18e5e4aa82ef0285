package voice

import (
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name            string
		text            string
		wantCents       int64
		wantNoAmount    bool
		wantDescription string
		wantCategory    string
	}{
		{
			name:            "spend verb with amount and keyword",
			text:            "gastei 25 reais com lanche",
			wantCents:       2500,
			wantDescription: "com lanche",
			wantCategory:    "Alimentação",
		},
		{
			name:            "decimal amount with comma",
			text:            "paguei 12,50 reais de uber",
			wantCents:       1250,
			wantDescription: "de uber",
			wantCategory:    "Transporte",
		},
		{
			name:            "singular real unit is not an amount",
			text:            "gastei 1 real de bala",
			wantNoAmount:    true,
			wantDescription: "1 real de bala",
			wantCategory:    "Outros",
		},
		{
			name:            "spelled-out number has no amount",
			text:            "gastei vinte e cinco reais com lanche",
			wantNoAmount:    true,
			wantDescription: "vinte e cinco reais com lanche",
			wantCategory:    "Alimentação",
		},
		{
			name:            "health keyword outranks purchase verb",
			text:            "comprei remédio por quinze reais",
			wantNoAmount:    true,
			wantDescription: "remédio por quinze reais",
			wantCategory:    "Saúde",
		},
		{
			name:            "category priority prefers food",
			text:            "gastei 30 reais no restaurante do mercado",
			wantCents:       3000,
			wantDescription: "no restaurante do mercado",
			wantCategory:    "Alimentação",
		},
		{
			name:            "only first amount counts",
			text:            "paguei 10 reais e depois 20 reais",
			wantCents:       1000,
			wantDescription: "e depois 20 reais",
			wantCategory:    "Outros",
		},
		{
			name:            "amount only falls back to stock description",
			text:            "gastei 25 reais",
			wantCents:       2500,
			wantDescription: FallbackDescription,
			wantCategory:    "Outros",
		},
		{
			name:            "no amount no keywords",
			text:            "não sei o que aconteceu",
			wantNoAmount:    true,
			wantDescription: "não sei o que aconteceu",
			wantCategory:    "Outros",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := Parse(tt.text)

			if tt.wantNoAmount {
				if cmd.Amount != nil {
					t.Errorf("Parse(%q).Amount = %v, want nil", tt.text, cmd.Amount)
				}
			} else {
				if cmd.Amount == nil {
					t.Fatalf("Parse(%q).Amount = nil, want %d cents", tt.text, tt.wantCents)
				}
				if cmd.Amount.Cents != tt.wantCents {
					t.Errorf("Parse(%q).Amount = %d cents, want %d", tt.text, cmd.Amount.Cents, tt.wantCents)
				}
			}
			if cmd.Description != tt.wantDescription {
				t.Errorf("Parse(%q).Description = %q, want %q", tt.text, cmd.Description, tt.wantDescription)
			}
			if cmd.Category != tt.wantCategory {
				t.Errorf("Parse(%q).Category = %q, want %q", tt.text, cmd.Category, tt.wantCategory)
			}
		})
	}
}

func TestParse_NeverMutatesInputMeaning(t *testing.T) {
	// Case-insensitive verb and unit matching.
	cmd := Parse("GASTEI 40 REAIS com cinema")
	if cmd.Amount == nil || cmd.Amount.Cents != 4000 {
		t.Fatalf("uppercase parse failed: %+v", cmd)
	}
	if cmd.Category != "Lazer" {
		t.Errorf("Category = %q, want Lazer", cmd.Category)
	}
}
