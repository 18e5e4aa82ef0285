package core

import (
	"errors"
	"strings"
	"time"
)

const (
	// Expense origins mirror how the entry reached the ledger.
	OriginManual ExpenseOrigin = "manual"
	OriginVoice  ExpenseOrigin = "voice"
	OriginPhoto  ExpenseOrigin = "photo"

	OriginSalary     IncomeOrigin = "salary"
	OriginFreelance  IncomeOrigin = "freelance"
	OriginInvestment IncomeOrigin = "investment"
	OriginOther      IncomeOrigin = "other"

	PeriodMonthly GoalPeriod = "monthly"
	PeriodWeekly  GoalPeriod = "weekly"

	RecurNone    Recurrence = ""
	RecurDaily   Recurrence = "daily"
	RecurWeekly  Recurrence = "weekly"
	RecurMonthly Recurrence = "monthly"
	RecurYearly  Recurrence = "yearly"
)

// DefaultCategory is assigned when an entry arrives without a category.
const DefaultCategory = "Outros"

type (
	ExpenseOrigin string
	IncomeOrigin  string
	GoalPeriod    string
	Recurrence    string

	// Expense is a dated outgoing entry. IDs are opaque, assigned at
	// creation and never reused; Date is immutable afterwards.
	Expense struct {
		ID          string        `json:"id"`
		Amount      Money         `json:"amount"`
		Description string        `json:"description"`
		Category    string        `json:"category"`
		Date        time.Time     `json:"date"`
		Origin      ExpenseOrigin `json:"origin"`
	}

	// Income is a dated incoming entry.
	Income struct {
		ID          string       `json:"id"`
		Amount      Money        `json:"amount"`
		Description string       `json:"description"`
		Category    string       `json:"category"`
		Date        time.Time    `json:"date"`
		Origin      IncomeOrigin `json:"origin"`
	}

	// Goal is a recurring budget limit scoped to one category and period.
	// Limit, Period, Active, Category and Color may be edited in place;
	// the ID is stable.
	Goal struct {
		ID       string     `json:"id"`
		Category string     `json:"category"`
		Limit    Money      `json:"limit"`
		Period   GoalPeriod `json:"period"`
		Active   bool       `json:"active"`
		Color    string     `json:"color,omitempty"`
	}

	// Reminder is a dated obligation, independent of the ledger. Only Done
	// toggles after creation. Recurrence is descriptive metadata: completing
	// a reminder never rewrites DueDate.
	Reminder struct {
		ID          string     `json:"id"`
		Title       string     `json:"title"`
		Description string     `json:"description,omitempty"`
		Amount      *Money     `json:"amount,omitempty"`
		DueDate     time.Time  `json:"due_date"`
		Recurrence  Recurrence `json:"recurrence,omitempty"`
		Done        bool       `json:"done"`
		Category    string     `json:"category"`
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyTitle       = errors.New("empty title")
	ErrInvalidPeriod    = errors.New("invalid goal period")
	ErrInvalidOrigin    = errors.New("invalid origin")
)

func (o ExpenseOrigin) Valid() bool {
	switch o {
	case OriginManual, OriginVoice, OriginPhoto:
		return true
	}
	return false
}

func (o IncomeOrigin) Valid() bool {
	switch o {
	case OriginSalary, OriginFreelance, OriginInvestment, OriginOther:
		return true
	}
	return false
}

func (p GoalPeriod) Valid() bool {
	return p == PeriodMonthly || p == PeriodWeekly
}

func (r Recurrence) Valid() bool {
	switch r {
	case RecurNone, RecurDaily, RecurWeekly, RecurMonthly, RecurYearly:
		return true
	}
	return false
}

func (e Expense) Validate() error {
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	if !e.Origin.Valid() {
		return ErrInvalidOrigin
	}
	return nil
}

func (in Income) Validate() error {
	if err := in.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(in.Description) == "" {
		return ErrEmptyDescription
	}
	if in.Date.IsZero() {
		return ErrInvalidDate
	}
	if !in.Origin.Valid() {
		return ErrInvalidOrigin
	}
	return nil
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Category) == "" {
		return errors.New("empty goal category")
	}
	if err := g.Limit.Validate(); err != nil {
		return err
	}
	if !g.Period.Valid() {
		return ErrInvalidPeriod
	}
	return nil
}

func (r Reminder) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrEmptyTitle
	}
	if r.DueDate.IsZero() {
		return ErrInvalidDate
	}
	if r.Amount != nil {
		if err := r.Amount.Validate(); err != nil {
			return err
		}
	}
	if !r.Recurrence.Valid() {
		return errors.New("invalid recurrence")
	}
	return nil
}
