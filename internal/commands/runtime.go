package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/minibooks-dev/minibooks/internal/classify"
	"github.com/minibooks-dev/minibooks/internal/config"
	"github.com/minibooks-dev/minibooks/internal/ledger"
	"github.com/minibooks-dev/minibooks/internal/mapping"
	"github.com/minibooks-dev/minibooks/internal/model"
	"github.com/minibooks-dev/minibooks/internal/oplog"
	"github.com/minibooks-dev/minibooks/internal/store"
)

// runtime wires the configured store, engine, resolver, and classifier for
// one command invocation.
type runtime struct {
	cfg        config.Config
	userID     string
	store      *store.SQLite
	engine     *ledger.Engine
	resolver   *mapping.Resolver
	classifier *classify.Bayes
}

// openRuntime loads config and builds the service graph. Callers must Close.
func openRuntime(cmd *cobra.Command) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	userID := cfg.User
	if flag, _ := cmd.Flags().GetString("user"); flag != "" {
		userID = flag
	}

	if err := os.MkdirAll(cfg.DataDir(), 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	st, err := store.OpenSQLite(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	table := mapping.DefaultTable()
	if cfg.Mapping.TablePath != "" {
		table, err = mapping.LoadTable(cfg.Mapping.TablePath)
		if err != nil {
			_ = st.Close()
			return nil, err
		}
	}

	clf, err := classify.LoadBayes(cfg.Classifier.ModelPath)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	return &runtime{
		cfg:        cfg,
		userID:     userID,
		store:      st,
		engine:     ledger.NewEngine(st),
		resolver:   mapping.NewResolver(st, table),
		classifier: clf,
	}, nil
}

func (rt *runtime) Close() {
	_ = rt.store.Close()
}

// logOp appends one status transition to the operation log. Log failures
// never fail the operation itself.
func (rt *runtime) logOp(op, entryID, details string) {
	err := oplog.Append(rt.cfg.DataDir(), []oplog.Entry{{
		Timestamp: time.Now().UTC(),
		Op:        op,
		EntryID:   entryID,
		UserID:    rt.userID,
		Details:   details,
	}})
	if err != nil {
		slog.Warn("appending to oplog", "error", err)
	}
}

// ensureTrained trains and saves the classifier from the built-in samples
// when it has never been trained and auto-train is on.
func (rt *runtime) ensureTrained(ctx context.Context) error {
	if rt.classifier.Trained() || !rt.cfg.Classifier.AutoTrain {
		return nil
	}
	slog.Info("classifier untrained, training from built-in samples")
	if err := rt.classifier.Train(ctx, classify.DefaultTrainingSet()); err != nil {
		return err
	}
	return rt.classifier.Save(rt.cfg.Classifier.ModelPath)
}

// entryDirection infers income or expense from the account types an entry
// touches. Entries touching neither side return an error and skip learning.
func (rt *runtime) entryDirection(ctx context.Context, entry *model.JournalEntry) (model.Direction, error) {
	for _, line := range entry.Lines {
		acct, err := rt.store.GetAccount(ctx, entry.UserID, line.AccountCode)
		if err != nil {
			return "", err
		}
		switch {
		case acct.Type == model.AccountTypeRevenue && line.Credit.IsPositive():
			return model.DirectionIncome, nil
		case acct.Type == model.AccountTypeExpense && line.Debit.IsPositive():
			return model.DirectionExpense, nil
		}
	}
	return "", fmt.Errorf("entry %s touches no revenue or expense account", entry.ID)
}

// addParams describes one simple two-line transaction.
type addParams struct {
	Description string
	Direction   model.Direction
	Amount      decimal.Decimal
	Date        time.Time
	Reference   string
	ManualCode  string // skip prediction, pair this account with Cash/Bank
	NoPost      bool   // leave the entry in draft
}

// addTransaction runs the full flow: seed accounts, predict, resolve the
// account pair, create a balanced two-line entry, and post it.
func (rt *runtime) addTransaction(ctx context.Context, p addParams) (*model.JournalEntry, error) {
	if !p.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive, got %s", p.Amount)
	}

	if err := rt.resolver.EnsureDefaultAccounts(ctx, rt.userID); err != nil {
		return nil, err
	}

	var (
		pair       mapping.AccountPair
		prediction classify.Prediction
		err        error
	)
	if p.ManualCode != "" {
		pair, err = rt.resolver.ResolveManual(ctx, p.ManualCode, p.Direction, rt.userID)
	} else {
		if err := rt.ensureTrained(ctx); err != nil {
			return nil, err
		}
		prediction, err = rt.classifier.Predict(ctx, p.Description, p.Direction)
		if err != nil {
			return nil, err
		}
		slog.Info("category predicted",
			"description", p.Description,
			"category", prediction.Category,
			"confidence", prediction.Confidence)
		pair, err = rt.resolver.Resolve(ctx, prediction.Category, p.Direction, rt.userID)
	}
	if err != nil {
		return nil, err
	}

	entry, err := rt.engine.CreateBalancedEntry(ctx, ledger.CreateEntryParams{
		UserID:          rt.userID,
		TransactionDate: p.Date,
		Reference:       p.Reference,
		Description:     p.Description,
		Lines: []model.Line{
			{AccountCode: pair.Debit.Code, Debit: p.Amount, Description: p.Description},
			{AccountCode: pair.Credit.Code, Credit: p.Amount, Description: p.Description},
		},
		PredictedCategory: prediction.Category,
		Confidence:        decimal.NewFromFloat(prediction.Confidence).Round(4),
	})
	if err != nil {
		return nil, err
	}
	rt.logOp("create", entry.ID, p.Description)

	if p.NoPost {
		return entry, nil
	}

	entry, err = rt.engine.Post(ctx, entry.ID)
	if err != nil {
		return nil, err
	}
	rt.logOp("post", entry.ID, p.Description)
	return entry, nil
}
