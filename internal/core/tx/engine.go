package tx

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/LeJamon/goTaxLedger/internal/core/account"
	"github.com/LeJamon/goTaxLedger/internal/core/amount"
	"github.com/LeJamon/goTaxLedger/internal/core/ledger"
	"github.com/LeJamon/goTaxLedger/internal/core/ledger/header"
	"github.com/LeJamon/goTaxLedger/internal/core/tax"
	"github.com/LeJamon/goTaxLedger/internal/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EngineConfig holds configuration for the transaction engine
type EngineConfig struct {
	// Clock defaults to SystemClock
	Clock Clock

	// Logger defaults to a no-op logger
	Logger *zap.Logger

	// Metrics may be nil
	Metrics *metrics.Metrics

	// JournalSize is the number of results kept for Receipt lookups
	JournalSize int
}

// ApplyResult contains the result of applying a transaction
type ApplyResult struct {
	// ID identifies the submission in the journal
	ID uuid.UUID `json:"id"`

	Type   Type            `json:"type"`
	Caller account.Address `json:"caller"`

	// Result is the transaction result code
	Result Result `json:"result"`

	// Applied indicates if the transaction was applied to the ledger
	Applied bool `json:"applied"`

	// Sequence is the ledger sequence after the transaction; zero if not applied
	Sequence uint64 `json:"sequence,omitempty"`

	// Message is a human-readable result message
	Message string `json:"message"`

	// Time is the engine clock reading used for the transaction
	Time time.Time `json:"time"`

	// Transfer is the tax quote of a token movement
	Transfer *tax.Quote `json:"transfer,omitempty"`

	// Distribution is set by TriggerTax
	Distribution *tax.Distribution `json:"distribution,omitempty"`

	// Metadata contains the changes made by the transaction
	Metadata *ledger.Metadata `json:"-"`
}

// Err returns nil for an applied transaction and the result code otherwise.
func (r ApplyResult) Err() error {
	if r.Result.IsSuccess() {
		return nil
	}
	msg := strings.TrimPrefix(r.Message, r.Result.String()+": ")
	if msg == "" || msg == r.Result.String() {
		return r.Result
	}
	return fmt.Errorf("%w: %s", r.Result, msg)
}

// Engine processes transactions against a ledger. All access is serialized;
// a transaction either commits every staged change or none.
type Engine struct {
	mu sync.Mutex

	ledger   *ledger.Ledger
	registry *tax.Registry
	journal  *Journal

	clock   Clock
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewEngine creates an engine over l and reg. The engine owns both from
// here on; use Read to inspect them.
func NewEngine(l *ledger.Ledger, reg *tax.Registry, config EngineConfig) (*Engine, error) {
	if l == nil || reg == nil {
		return nil, errors.New("engine needs a ledger and a registry")
	}
	if config.Clock == nil {
		config.Clock = SystemClock{}
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	journal, err := NewJournal(config.JournalSize)
	if err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}
	return &Engine{
		ledger:   l,
		registry: reg,
		journal:  journal,
		clock:    config.Clock,
		logger:   config.Logger,
		metrics:  config.Metrics,
	}, nil
}

// Apply runs tx through authorization, preflight and apply, then commits
// the staged changes if every check passed.
func (e *Engine) Apply(tx Transaction) ApplyResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	started := time.Now()
	res := ApplyResult{
		ID:     uuid.New(),
		Type:   tx.TxType(),
		Caller: tx.GetCommon().Caller,
		Time:   e.clock.Now(),
	}

	res.Result, res.Message = e.apply(tx, &res)
	res.Applied = res.Result.IsApplied()
	if res.Message == "" {
		res.Message = res.Result.Message()
	}

	e.journal.Add(res)
	e.record(res, time.Since(started))
	return res
}

func (e *Engine) apply(tx Transaction, res *ApplyResult) (Result, string) {
	log := e.logger.With(
		zap.Stringer("tx_id", res.ID),
		zap.Stringer("type", res.Type),
		zap.Stringer("caller", res.Caller),
	)

	// Step 1: Authorization against the committed registry. A missing
	// caller is reported by preflight.
	if a, ok := tx.(Authorizer); ok && !res.Caller.IsZero() {
		if r := a.Authorize(e.registry, res.Caller); !r.IsSuccess() {
			log.Warn("unauthorized caller", zap.Stringer("result", r))
			return r, fmt.Sprintf("%s is not allowed to submit %s", res.Caller, res.Type)
		}
	}

	// Step 2: Preflight checks (syntax validation)
	if err := tx.Validate(); err != nil {
		r := ResultFromError(err)
		if !r.IsTem() {
			r = TemMALFORMED
		}
		log.Debug("preflight failed", zap.Error(err))
		return r, err.Error()
	}

	// Step 3: Stage state and configuration
	sb := ledger.NewSandbox(e.ledger)
	reg := e.registry
	_, writesRegistry := tx.(RegistryWriter)
	if writesRegistry {
		reg = e.registry.Clone()
	}

	ctx := &ApplyContext{
		View:        sb,
		Registry:    reg,
		Caller:      res.Caller,
		Contract:    e.ledger.Contract(),
		TotalSupply: e.ledger.TotalSupply(),
		Now:         res.Time,
		Logger:      log,
	}

	// Step 4: Apply the transaction
	r := tx.Apply(ctx)
	res.Transfer = ctx.Transfer
	res.Distribution = ctx.Distribution
	if !r.IsSuccess() {
		sb.Discard()
		res.Transfer = nil
		if ctx.Err != nil {
			e.recordRejection(ctx.Err)
			return r, ctx.Err.Error()
		}
		return r, ""
	}

	// Step 5: Invariants, then commit
	if err := CheckInvariants(sb); err != nil {
		sb.Discard()
		res.Transfer, res.Distribution = nil, nil
		log.Warn("invariant check failed", zap.Error(err))
		e.metrics.RecordInvariantViolation()
		if errors.Is(err, ErrInvariantViolated) {
			return TefINVARIANT_FAILED, err.Error()
		}
		return TefINTERNAL, err.Error()
	}

	meta, err := sb.Apply()
	if err != nil {
		log.Error("commit failed", zap.Error(err))
		return TefINTERNAL, err.Error()
	}
	if writesRegistry {
		e.registry = reg
	}
	e.ledger.Advance()

	res.Metadata = meta
	res.Sequence = e.ledger.Sequence()
	log.Debug("transaction applied",
		zap.Uint64("sequence", res.Sequence),
		zap.Int("affected_nodes", len(meta.AffectedNodes)),
	)
	if d := ctx.Distribution; d != nil && !d.Skipped {
		log.Info("tax distributed",
			zap.Stringer("withheld", d.Withheld),
			zap.Stringer("distributed", d.Distributed),
			zap.Stringer("remainder", d.Remainder),
		)
	}
	return TesSUCCESS, ""
}

func (e *Engine) record(res ApplyResult, took time.Duration) {
	if e.metrics == nil {
		return
	}
	e.metrics.RecordTransaction(res.Type.String(), res.Result.String(), took.Seconds())
	e.metrics.SetJournalEntries(e.journal.Len())
	if !res.Applied {
		return
	}
	if q := res.Transfer; q != nil {
		e.metrics.RecordTransfer(q.Category.String(), e.tokens(q.Withheld))
	}
	if d := res.Distribution; d != nil {
		if d.Skipped {
			e.metrics.RecordDistribution("skipped")
		} else {
			e.metrics.RecordDistribution("distributed")
			for _, s := range d.Shares {
				e.metrics.RecordShare(s.Role.String(), e.tokens(s.Amount))
			}
		}
	}
	if withheld, err := ledger.Balance(e.ledger, e.ledger.Contract()); err == nil {
		e.metrics.SetWithheldBalance(e.tokens(withheld))
	}
}

func (e *Engine) recordRejection(err error) {
	switch {
	case errors.Is(err, tax.ErrGroupAllowanceExceeded):
		e.metrics.RecordCycleRejection("group")
	case errors.Is(err, tax.ErrCycleAllowanceExceeded):
		e.metrics.RecordCycleRejection("address")
	}
}

// tokens converts smallest units to whole tokens for metrics.
func (e *Engine) tokens(a amount.Amount) float64 {
	return a.Float64() / math.Pow10(int(e.ledger.Header.Decimals))
}

// Read calls fn with the committed ledger and registry while holding the
// engine lock. fn must not retain or modify either.
func (e *Engine) Read(fn func(v ledger.View, reg *tax.Registry) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.ledger, e.registry)
}

// Registry returns a copy of the committed registry.
func (e *Engine) Registry() *tax.Registry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.Clone()
}

// Header returns the ledger header.
func (e *Engine) Header() header.LedgerHeader {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Header
}

// Journal returns the receipt journal.
func (e *Engine) Journal() *Journal {
	return e.journal
}

// Clock returns the engine clock.
func (e *Engine) Clock() Clock {
	return e.clock
}
