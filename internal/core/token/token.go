// Package token is the caller-facing facade of the tax token: ERC-20 style
// transfers and allowances, the operator's tax configuration and the
// distribution trigger. Every mutating call runs through the transaction
// engine; reads see the last committed state.
package token

import (
	"fmt"

	"github.com/LeJamon/goTaxLedger/internal/core/ledger/genesis"
	"github.com/LeJamon/goTaxLedger/internal/core/tx"
	_ "github.com/LeJamon/goTaxLedger/internal/core/tx/all"
	"github.com/LeJamon/goTaxLedger/internal/metrics"
	"go.uber.org/zap"
)

// Config holds configuration for the token
type Config struct {
	// Genesis is the configuration for creating the genesis ledger
	Genesis genesis.Config

	// Clock drives sell cycles; nil means the wall clock
	Clock tx.Clock

	// Logger defaults to a no-op logger
	Logger *zap.Logger

	// Metrics may be nil
	Metrics *metrics.Metrics

	// JournalSize bounds the receipts kept for Receipt lookups
	JournalSize int

	// Hooks receive every apply result, rejected ones included
	Hooks *EventHooks
}

// DefaultConfig returns the default token configuration
func DefaultConfig() Config {
	return Config{
		Genesis:     genesis.DefaultConfig(),
		JournalSize: tx.DefaultJournalSize,
	}
}

// Token is the facade over one token ledger. It is safe for concurrent use;
// calls are applied one at a time in arrival order.
type Token struct {
	config Config
	engine *tx.Engine
	hooks  *EventHooks
	logger *zap.Logger
}

// New creates a token from its genesis configuration.
func New(cfg Config) (*Token, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Hooks == nil {
		cfg.Hooks = DefaultEventHooks()
	}

	g, err := genesis.Create(cfg.Genesis)
	if err != nil {
		return nil, fmt.Errorf("failed to create genesis ledger: %w", err)
	}

	engine, err := tx.NewEngine(g.Ledger, g.Registry, tx.EngineConfig{
		Clock:       cfg.Clock,
		Logger:      cfg.Logger,
		Metrics:     cfg.Metrics,
		JournalSize: cfg.JournalSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	cfg.Logger.Info("token created",
		zap.String("name", cfg.Genesis.Name),
		zap.String("symbol", cfg.Genesis.Symbol),
		zap.Uint64("supply", cfg.Genesis.Supply),
		zap.Stringer("operator", g.Operator),
		zap.Stringer("contract", g.Contract),
	)

	return &Token{
		config: cfg,
		engine: engine,
		hooks:  cfg.Hooks,
		logger: cfg.Logger,
	}, nil
}

// Submit applies a transaction and returns its receipt. The error is nil
// only for tesSUCCESS; otherwise it wraps the result code.
func (t *Token) Submit(txn tx.Transaction) (tx.ApplyResult, error) {
	res := t.engine.Apply(txn)
	t.hooks.publish(res)
	return res, res.Err()
}

// Engine returns the underlying transaction engine.
func (t *Token) Engine() *tx.Engine {
	return t.engine
}
