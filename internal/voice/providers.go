package voice

import (
	"context"
	"math/rand"

	"github.com/brianvoe/gofakeit/v6"

	"carteira/internal/core"
)

// TranscriptionProvider yields a transcript of a completed recording.
// Real speech-to-text lives behind this port; the engine only sees text.
type TranscriptionProvider interface {
	Transcribe(ctx context.Context) (string, error)
}

// ReceiptScan is the structured output of a receipt capture.
type ReceiptScan struct {
	Merchant string     `json:"merchant"`
	Amount   core.Money `json:"amount"`
	Category string     `json:"category"`
}

// ReceiptOCRProvider yields a structured scan of a captured receipt photo.
type ReceiptOCRProvider interface {
	Scan(ctx context.Context) (ReceiptScan, error)
}

// SimulatedTranscription returns one of a fixed set of sample utterances,
// standing in for a real speech-to-text integration.
type SimulatedTranscription struct {
	rng *rand.Rand
}

func NewSimulatedTranscription(seed int64) *SimulatedTranscription {
	return &SimulatedTranscription{rng: rand.New(rand.NewSource(seed))}
}

var sampleUtterances = []string{
	"gastei vinte e cinco reais com lanche",
	"paguei cinquenta reais de combustível",
	"comprei remédio por quinze reais",
	"almoço custou trinta reais",
	"café da manhã dez reais",
}

func (s *SimulatedTranscription) Transcribe(context.Context) (string, error) {
	return sampleUtterances[s.rng.Intn(len(sampleUtterances))], nil
}

// SimulatedReceiptOCR fabricates a plausible receipt using random data,
// standing in for a real OCR integration.
type SimulatedReceiptOCR struct {
	faker *gofakeit.Faker
}

func NewSimulatedReceiptOCR(seed int64) *SimulatedReceiptOCR {
	return &SimulatedReceiptOCR{faker: gofakeit.New(seed)}
}

var receiptCategories = []string{"Compras", "Alimentação", "Transporte", "Saúde", "Lazer"}

func (s *SimulatedReceiptOCR) Scan(context.Context) (ReceiptScan, error) {
	price := s.faker.Price(5, 300)
	return ReceiptScan{
		Merchant: s.faker.Company(),
		Amount:   core.Money{Cents: int64(price*100 + 0.5)},
		Category: receiptCategories[s.faker.Number(0, len(receiptCategories)-1)],
	}, nil
}
