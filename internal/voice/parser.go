// Package voice turns free-text utterances ("gastei 25 reais com lanche")
// into structured expense drafts. Parsing is a pure function of the input
// string; how the text was obtained (speech, typing, a queue message) is
// a collaborator concern behind the provider ports.
package voice

import (
	"regexp"
	"strings"

	"carteira/internal/core"
)

// Command is the best-effort extraction result. Amount is nil when the
// text carries no parsable numeric mention; Parse never fails.
type Command struct {
	Amount      *core.Money `json:"amount,omitempty"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
}

// FallbackDescription is used when stripping the amount and verb leaves
// nothing displayable.
const FallbackDescription = "Gasto registrado por voz"

var (
	amountRe = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*reais?\b`)
	verbRe   = regexp.MustCompile(`(?i)^(gastei|paguei|comprei)\s*`)
)

// categoryRules maps categories to trigger keywords, scanned in priority
// order; the first category with any case-insensitive substring match wins.
var categoryRules = []struct {
	Name     string
	Keywords []string
}{
	{"Alimentação", []string{"lanche", "almoço", "jantar", "café", "comida", "restaurante", "lanchonete"}},
	{"Transporte", []string{"combustível", "gasolina", "uber", "taxi", "ônibus", "metrô"}},
	{"Saúde", []string{"remédio", "farmácia", "médico", "consulta", "exame"}},
	{"Compras", []string{"comprei", "compra", "mercado", "supermercado", "loja"}},
	{"Lazer", []string{"cinema", "teatro", "show", "diversão", "entretenimento"}},
}

// Parse extracts amount, description and category from an utterance.
// Only the first amount mention counts; multiple numeric mentions are
// never aggregated.
func Parse(text string) Command {
	cmd := Command{Category: inferCategory(text)}

	description := text
	if loc := amountRe.FindStringSubmatchIndex(text); loc != nil {
		raw := text[loc[2]:loc[3]]
		if m, err := core.ParseAmount(raw); err == nil {
			cmd.Amount = &m
		}
		description = text[:loc[0]] + text[loc[1]:]
	}

	description = strings.TrimSpace(description)
	description = strings.TrimSpace(verbRe.ReplaceAllString(description, ""))
	if description == "" {
		description = FallbackDescription
	}
	cmd.Description = description

	return cmd
}

func inferCategory(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range categoryRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Name
			}
		}
	}
	return core.DefaultCategory
}
