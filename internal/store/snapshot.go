package store

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/ledgerbook-dev/ledgerbook/internal/model"
)

// stateDoc is the YAML form of a LedgerState snapshot. Amounts travel
// as exact decimal strings, dates as RFC3339.
type stateDoc struct {
	AccumulatedResults string       `yaml:"accumulated_results"`
	Accounts           []accountDoc `yaml:"accounts"`
	Periods            []periodDoc  `yaml:"periods"`
}

type accountDoc struct {
	Code     string `yaml:"code"`
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	Nature   string `yaml:"nature"`
	Balance  string `yaml:"balance"`
	Active   bool   `yaml:"active"`
}

type periodDoc struct {
	Name      string `yaml:"name"`
	StartDate string `yaml:"start_date"`
	EndDate   string `yaml:"end_date,omitempty"`
	Closed    bool   `yaml:"closed"`
	Result    string `yaml:"result"`
}

// LoadState reads the full persisted ledger: every account with its
// balance, accumulated results, and all period metadata.
func (q *queries) LoadState(ctx context.Context) (model.LedgerState, error) {
	accounts, err := q.AllAccounts(ctx)
	if err != nil {
		return model.LedgerState{}, err
	}
	accumulated, err := q.AccumulatedResults(ctx)
	if err != nil {
		return model.LedgerState{}, err
	}
	periods, err := q.Periods(ctx)
	if err != nil {
		return model.LedgerState{}, err
	}
	return model.LedgerState{
		Accounts:           accounts,
		AccumulatedResults: accumulated,
		Periods:            periods,
	}, nil
}

// RestoreState replaces the persisted ledger with the given state. Run
// it through Store.WithTx so a half-applied restore cannot survive.
func (q *queries) RestoreState(ctx context.Context, state model.LedgerState) error {
	if _, err := q.db.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clearing transactions: %w", err)
	}
	if _, err := q.db.ExecContext(ctx, `DELETE FROM accounts`); err != nil {
		return fmt.Errorf("clearing accounts: %w", err)
	}
	if _, err := q.db.ExecContext(ctx, `DELETE FROM periods`); err != nil {
		return fmt.Errorf("clearing periods: %w", err)
	}

	for _, acct := range state.Accounts {
		if _, err := q.CreateAccount(ctx, acct); err != nil {
			return err
		}
	}
	for _, p := range state.Periods {
		id, err := q.CreatePeriod(ctx, p.Name, p.StartDate)
		if err != nil {
			return err
		}
		if p.Closed {
			if err := q.ClosePeriod(ctx, id, p.EndDate, p.Result); err != nil {
				return err
			}
		}
	}
	return q.setAccumulatedResults(ctx, state.AccumulatedResults)
}

// EncodeState writes a LedgerState snapshot as YAML.
func EncodeState(w io.Writer, state model.LedgerState) error {
	doc := stateDoc{AccumulatedResults: state.AccumulatedResults.String()}
	for _, acct := range state.Accounts {
		doc.Accounts = append(doc.Accounts, accountDoc{
			Code:     acct.Code,
			Name:     acct.Name,
			Category: string(acct.Category),
			Nature:   string(acct.Nature),
			Balance:  acct.Balance.String(),
			Active:   acct.Active,
		})
	}
	for _, p := range state.Periods {
		pd := periodDoc{
			Name:      p.Name,
			StartDate: p.StartDate.UTC().Format(time.RFC3339),
			Closed:    p.Closed,
			Result:    p.Result.String(),
		}
		if !p.EndDate.IsZero() {
			pd.EndDate = p.EndDate.UTC().Format(time.RFC3339)
		}
		doc.Periods = append(doc.Periods, pd)
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return nil
}

// DecodeState reads a YAML snapshot back into a LedgerState.
func DecodeState(r io.Reader) (model.LedgerState, error) {
	var doc stateDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return model.LedgerState{}, fmt.Errorf("decoding snapshot: %w", err)
	}

	state := model.LedgerState{}
	var err error
	state.AccumulatedResults, err = decimal.NewFromString(doc.AccumulatedResults)
	if err != nil {
		return model.LedgerState{}, fmt.Errorf("parsing accumulated results %q: %w", doc.AccumulatedResults, err)
	}

	for _, ad := range doc.Accounts {
		balance, err := decimal.NewFromString(ad.Balance)
		if err != nil {
			return model.LedgerState{}, fmt.Errorf("parsing balance of %s: %w", ad.Code, err)
		}
		category := model.Category(ad.Category)
		if !category.Valid() {
			return model.LedgerState{}, fmt.Errorf("unknown category %q for account %s", ad.Category, ad.Code)
		}
		state.Accounts = append(state.Accounts, model.Account{
			Code:     ad.Code,
			Name:     ad.Name,
			Category: category,
			Nature:   model.Nature(ad.Nature),
			Balance:  balance,
			Active:   ad.Active,
		})
	}

	for _, pd := range doc.Periods {
		p := model.Period{Name: pd.Name, Closed: pd.Closed}
		p.StartDate, err = time.Parse(time.RFC3339, pd.StartDate)
		if err != nil {
			return model.LedgerState{}, fmt.Errorf("parsing start of period %s: %w", pd.Name, err)
		}
		if pd.EndDate != "" {
			p.EndDate, err = time.Parse(time.RFC3339, pd.EndDate)
			if err != nil {
				return model.LedgerState{}, fmt.Errorf("parsing end of period %s: %w", pd.Name, err)
			}
		}
		p.Result, err = decimal.NewFromString(pd.Result)
		if err != nil {
			return model.LedgerState{}, fmt.Errorf("parsing result of period %s: %w", pd.Name, err)
		}
		state.Periods = append(state.Periods, p)
	}
	return state, nil
}
