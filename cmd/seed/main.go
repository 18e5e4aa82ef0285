// Command seed fills the configured ledger backend with generated data,
// useful for exercising the analytics endpoints locally.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"carteira/internal/cli"
	"carteira/internal/core"
)

var seedCategories = []string{"Alimentação", "Transporte", "Saúde", "Compras", "Lazer", "Outros"}

var incomeOrigins = []core.IncomeOrigin{
	core.OriginSalary,
	core.OriginFreelance,
	core.OriginInvestment,
	core.OriginOther,
}

func main() {
	expenseCount := flag.Int("expenses", 120, "number of expenses to generate")
	incomeCount := flag.Int("incomes", 12, "number of incomes to generate")
	days := flag.Int("days", 180, "spread entries over this many past days")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	ledger, cleanup := cli.MustOpenLedger(logger, cfg)
	if cleanup != nil {
		defer func() { _ = cleanup() }()
	}

	faker := gofakeit.New(*seed)
	ctx := context.Background()
	now := time.Now()

	for i := 0; i < *expenseCount; i++ {
		exp := core.Expense{
			Amount:      core.Money{Cents: int64(faker.Price(3, 400)*100 + 0.5)},
			Description: faker.ProductName(),
			Category:    seedCategories[faker.Number(0, len(seedCategories)-1)],
			Date:        now.AddDate(0, 0, -faker.Number(0, *days)),
			Origin:      core.OriginManual,
		}
		if _, err := ledger.AddExpense(ctx, exp); err != nil {
			logger.Error("Failed to seed expense", "error", err)
			os.Exit(1)
		}
	}

	for i := 0; i < *incomeCount; i++ {
		in := core.Income{
			Amount:      core.Money{Cents: int64(faker.Price(800, 6000)*100 + 0.5)},
			Description: faker.Company(),
			Category:    "Renda",
			Date:        now.AddDate(0, 0, -faker.Number(0, *days)),
			Origin:      incomeOrigins[faker.Number(0, len(incomeOrigins)-1)],
		}
		if _, err := ledger.AddIncome(ctx, in); err != nil {
			logger.Error("Failed to seed income", "error", err)
			os.Exit(1)
		}
	}

	for _, category := range []string{"Alimentação", "Transporte", "Lazer"} {
		goal := core.Goal{
			Category: category,
			Limit:    core.Money{Cents: int64(faker.Price(200, 1500)*100 + 0.5)},
			Period:   core.PeriodMonthly,
			Color:    faker.HexColor(),
		}
		if _, err := ledger.AddGoal(ctx, goal); err != nil {
			logger.Error("Failed to seed goal", "error", err)
			os.Exit(1)
		}
	}

	reminders := []core.Reminder{
		{
			Title:      "Conta de luz",
			Amount:     &core.Money{Cents: int64(faker.Price(80, 250)*100 + 0.5)},
			DueDate:    now.AddDate(0, 0, 2),
			Recurrence: core.RecurMonthly,
			Category:   "Contas",
		},
		{
			Title:      "Aluguel",
			Amount:     &core.Money{Cents: int64(faker.Price(900, 2200)*100 + 0.5)},
			DueDate:    now.AddDate(0, 0, 10),
			Recurrence: core.RecurMonthly,
			Category:   "Moradia",
		},
		{
			Title:    "Renovar seguro",
			DueDate:  now.AddDate(0, 0, -3),
			Category: "Contas",
		},
	}
	for _, rem := range reminders {
		if _, err := ledger.AddReminder(ctx, rem); err != nil {
			logger.Error("Failed to seed reminder", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("Seed complete",
		"expenses", *expenseCount,
		"incomes", *incomeCount,
		"goals", 3,
		"reminders", len(reminders),
		"backend", cfg.DataBackend)
}
