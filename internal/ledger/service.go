package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ledgerbook-dev/ledgerbook/internal/code"
	"github.com/ledgerbook-dev/ledgerbook/internal/model"
	"github.com/ledgerbook-dev/ledgerbook/internal/store"
	"github.com/ledgerbook-dev/ledgerbook/internal/validate"
)

// Well-known accounts the built-in flows always target.
const (
	SalesAccountCode     = "ING-VENTAS"
	SalesAccountName     = "Sales Income"
	PurchasesAccountCode = "GAS-COMPRAS"
	PurchasesAccountName = "Purchases Expense"
)

var (
	ErrInvalidCategory = errors.New("invalid account category")
	ErrNoOpenPeriod    = errors.New("no open period")
)

// Service is the accounting core: it records transactions, derives the
// balance sheet and income statement, and closes periods. One ledger is
// one critical section; the mutex makes every multi-step mutation
// appear atomic to readers.
type Service struct {
	mu    sync.Mutex
	store *store.Store
	log   zerolog.Logger
}

// NewService creates a ledger Service.
func NewService(st *store.Store, log zerolog.Logger) *Service {
	return &Service{store: st, log: log}
}

// RecordSale posts a sale against the well-known sales income account.
func (s *Service) RecordSale(ctx context.Context, concept string, amount decimal.Decimal, actor model.User) (model.Transaction, error) {
	return s.record(ctx, recordParams{
		kind:         model.KindSale,
		category:     model.CategoryIncome,
		accountCode:  SalesAccountCode,
		accountName:  SalesAccountName,
		concept:      "Sale: " + concept,
		rawConcept:   concept,
		amount:       amount,
		actor:        actor,
		activityKind: model.ActivitySale,
	})
}

// RecordPurchase posts a purchase against the well-known purchases
// expense account.
func (s *Service) RecordPurchase(ctx context.Context, concept string, amount decimal.Decimal, actor model.User) (model.Transaction, error) {
	return s.record(ctx, recordParams{
		kind:         model.KindPurchase,
		category:     model.CategoryExpense,
		accountCode:  PurchasesAccountCode,
		accountName:  PurchasesAccountName,
		concept:      "Purchase: " + concept,
		rawConcept:   concept,
		amount:       amount,
		actor:        actor,
		activityKind: model.ActivityPurchase,
	})
}

// RecordGeneral posts a transaction against an account of the caller's
// chosen category, creating the account from the concept on first use.
func (s *Service) RecordGeneral(ctx context.Context, category model.Category, concept string, amount decimal.Decimal, actor model.User) (model.Transaction, error) {
	if !category.Valid() {
		return model.Transaction{}, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	return s.record(ctx, recordParams{
		kind:         model.KindGeneral,
		category:     category,
		accountCode:  code.Derive(category, concept),
		accountName:  concept,
		concept:      concept,
		rawConcept:   concept,
		amount:       amount,
		actor:        actor,
		activityKind: model.ActivityTransaction,
	})
}

type recordParams struct {
	kind         model.TransactionKind
	category     model.Category
	accountCode  string
	accountName  string
	concept      string
	rawConcept   string
	amount       decimal.Decimal
	actor        model.User
	activityKind model.ActivityKind
}

// record validates, then applies the four side effects (account upsert,
// transaction append, balance adjust, activity record) in one database
// transaction. A validation failure leaves no trace.
func (s *Service) record(ctx context.Context, p recordParams) (model.Transaction, error) {
	if err := validate.Amount(p.amount); err != nil {
		return model.Transaction{}, err
	}
	if err := validate.Concept(p.rawConcept); err != nil {
		return model.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	tx := model.Transaction{
		Date:     now,
		Concept:  p.concept,
		Amount:   p.amount,
		Kind:     p.kind,
		Username: p.actor.Username,
	}

	err := s.store.WithTx(ctx, func(st *store.Tx) error {
		acct, err := s.getOrCreateAccount(ctx, st, p.category, p.accountCode, p.accountName)
		if err != nil {
			return err
		}
		tx.AccountID = acct.ID

		tx.ID, err = st.CreateTransaction(ctx, tx)
		if err != nil {
			return err
		}

		// The amount is added as-is: the account's nature, fixed by its
		// category, decides which side of the equation it strengthens.
		if err := st.AddToBalance(ctx, acct.ID, p.amount); err != nil {
			return err
		}

		_, err = st.CreateActivity(ctx, model.Activity{
			Username:    p.actor.Username,
			FullName:    p.actor.FullName(),
			Kind:        p.activityKind,
			Description: fmt.Sprintf("%s: %s - $%s", p.activityKind, p.concept, p.amount.StringFixed(2)),
			Timestamp:   now,
		})
		return err
	})
	if err != nil {
		return model.Transaction{}, err
	}

	s.log.Info().
		Str("kind", string(p.kind)).
		Str("account", p.accountCode).
		Str("amount", p.amount.StringFixed(2)).
		Msg("transaction recorded")
	return tx, nil
}

// getOrCreateAccount resolves an account by code, lazily creating it
// with the nature its category dictates.
func (s *Service) getOrCreateAccount(ctx context.Context, st *store.Tx, category model.Category, accountCode, name string) (model.Account, error) {
	if !category.Valid() {
		return model.Account{}, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}

	acct, found, err := st.GetAccountByCode(ctx, accountCode)
	if err != nil {
		return model.Account{}, err
	}
	if found {
		return acct, nil
	}

	acct = model.Account{
		Code:     accountCode,
		Name:     name,
		Category: category,
		Nature:   category.Nature(),
		Balance:  decimal.Zero,
		Active:   true,
	}
	acct.ID, err = st.CreateAccount(ctx, acct)
	if err != nil {
		return model.Account{}, err
	}
	return acct, nil
}

// EnsureOpenPeriod opens the named period if none is open yet and
// returns the open one.
func (s *Service) EnsureOpenPeriod(ctx context.Context, name string) (model.Period, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, found, err := s.store.OpenPeriod(ctx)
	if err != nil {
		return model.Period{}, err
	}
	if found {
		return p, nil
	}

	start := time.Now()
	id, err := s.store.CreatePeriod(ctx, name, start)
	if err != nil {
		return model.Period{}, err
	}
	return model.Period{ID: id, Name: name, StartDate: start}, nil
}

// ClosePeriod folds the period result into accumulated results, zeroes
// every income and expense balance, stamps the open period closed and
// opens its successor. All of it commits or none of it does; there is
// no reopen. Returns the frozen period result.
func (s *Service) ClosePeriod(ctx context.Context, actor model.User) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result decimal.Decimal
	err := s.store.WithTx(ctx, func(st *store.Tx) error {
		period, found, err := st.OpenPeriod(ctx)
		if err != nil {
			return err
		}
		if !found {
			return ErrNoOpenPeriod
		}

		stmt, err := s.incomeStatement(ctx, st)
		if err != nil {
			return err
		}
		result = stmt.PeriodResult

		if err := st.AddToAccumulatedResults(ctx, result); err != nil {
			return err
		}
		if err := st.ResetPeriodAccounts(ctx); err != nil {
			return err
		}

		now := time.Now()
		if err := st.ClosePeriod(ctx, period.ID, now, result); err != nil {
			return err
		}
		if _, err := st.CreatePeriod(ctx, nextPeriodName(period.Name, period.ID), now); err != nil {
			return err
		}

		_, err = st.CreateActivity(ctx, model.Activity{
			Username:    actor.Username,
			FullName:    actor.FullName(),
			Kind:        model.ActivityClosePeriod,
			Description: fmt.Sprintf("period closed: %s - result $%s", period.Name, result.StringFixed(2)),
			Timestamp:   now,
		})
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}

	s.log.Info().Str("result", result.StringFixed(2)).Msg("period closed")
	return result, nil
}

// nextPeriodName derives the successor's name. Names like "Period 3"
// keep counting; anything else falls back to the numeric sequence.
func nextPeriodName(current string, id int64) string {
	var n int
	if _, err := fmt.Sscanf(current, "Period %d", &n); err == nil {
		return fmt.Sprintf("Period %d", n+1)
	}
	return fmt.Sprintf("Period %d", id+1)
}
