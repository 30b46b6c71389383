package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/LeJamon/goTaxLedger/internal/core/account"
	"github.com/LeJamon/goTaxLedger/internal/core/amount"
	"github.com/LeJamon/goTaxLedger/internal/core/ledger/genesis"
	"github.com/LeJamon/goTaxLedger/internal/core/token"
	"github.com/LeJamon/goTaxLedger/internal/core/tx"
	"github.com/LeJamon/goTaxLedger/internal/metrics"
	"go.uber.org/zap"
)

// Options configures a Runner.
type Options struct {
	Genesis     genesis.Config
	Start       time.Time
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
	JournalSize int
}

// StepResult is the outcome of one step.
type StepResult struct {
	Index   int           `json:"index"`
	Name    string        `json:"name,omitempty"`
	Type    string        `json:"type,omitempty"`
	Advance time.Duration `json:"advance,omitempty"`
	Time    time.Time     `json:"time"`

	// Result is nil for a step that only advanced the clock.
	Result *tx.ApplyResult `json:"result,omitempty"`

	Expect string `json:"expect,omitempty"`
	Passed bool   `json:"passed"`
}

// Balance is one named account's final balance.
type Balance struct {
	Name    string          `json:"name"`
	Address account.Address `json:"address"`
	Amount  amount.Amount   `json:"amount"`
}

// Report is the outcome of a run.
type Report struct {
	Scenario    string        `json:"scenario"`
	Steps       []StepResult  `json:"steps"`
	Balances    []Balance     `json:"balances"`
	Withheld    amount.Amount `json:"withheld"`
	TotalSupply amount.Amount `json:"total_supply"`
	Decimals    uint8         `json:"decimals"`
}

// Failed returns the steps whose result did not match their expectation.
func (r *Report) Failed() []StepResult {
	var out []StepResult
	for _, s := range r.Steps {
		if !s.Passed {
			out = append(out, s)
		}
	}
	return out
}

// Runner replays scenarios against a fresh token.
type Runner struct {
	opts Options
}

// NewRunner creates a runner. Every Run starts from opts.Genesis.
func NewRunner(opts Options) *Runner {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Start.IsZero() {
		opts.Start = tx.Epoch
	}
	return &Runner{opts: opts}
}

// Run replays sc step by step. A step whose result differs from its
// expectation is reported, not fatal; errors are reserved for scenarios
// that cannot be run at all.
func (r *Runner) Run(ctx context.Context, sc *Scenario) (*Report, error) {
	clock := tx.NewStepClock(r.opts.Start)
	tok, err := token.New(token.Config{
		Genesis:     r.opts.Genesis,
		Clock:       clock,
		Logger:      r.opts.Logger,
		Metrics:     r.opts.Metrics,
		JournalSize: r.opts.JournalSize,
	})
	if err != nil {
		return nil, err
	}

	log := r.opts.Logger.With(zap.String("scenario", sc.Name))
	report := &Report{
		Scenario:    sc.Name,
		TotalSupply: tok.TotalSupply(),
		Decimals:    tok.Decimals(),
	}

	for i := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		step := &sc.Steps[i]

		txn, err := step.Transaction()
		if err != nil {
			return report, fmt.Errorf("step %d: %w", i+1, err)
		}

		if step.Advance > 0 {
			clock.Advance(step.Advance)
		}

		sr := StepResult{
			Index:   i + 1,
			Name:    step.Name,
			Type:    step.Type,
			Advance: step.Advance,
			Time:    clock.Now(),
			Expect:  step.Expect,
			Passed:  true,
		}
		if txn != nil {
			res, _ := tok.Submit(txn)
			sr.Result = &res
			if step.Expect != "" {
				sr.Passed = res.Result.String() == step.Expect
			}
			if !sr.Passed {
				log.Warn("unexpected result",
					zap.Int("step", sr.Index),
					zap.String("type", step.Type),
					zap.String("expected", step.Expect),
					zap.Stringer("result", res.Result),
					zap.String("message", res.Message),
				)
			}
		}
		report.Steps = append(report.Steps, sr)
	}

	for _, name := range sc.Accounts {
		addr := account.FromName(name)
		bal, err := tok.BalanceOf(addr)
		if err != nil {
			return report, err
		}
		report.Balances = append(report.Balances, Balance{Name: name, Address: addr, Amount: bal})
	}
	if report.Withheld, err = tok.WithheldBalance(); err != nil {
		return report, err
	}

	log.Info("scenario finished",
		zap.Int("steps", len(report.Steps)),
		zap.Int("failed", len(report.Failed())),
	)
	return report, nil
}
