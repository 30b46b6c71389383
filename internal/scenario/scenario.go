// Package scenario replays scripted sequences of token operations. A
// scenario is a YAML document listing named accounts and steps; each step
// either submits a registered transaction, advances the clock, or both.
//
//	accounts: [owner, alice, pool]
//	steps:
//	  - type: SetLPAddress
//	    caller: "@owner"
//	    address: "@pool"
//	    lp: true
//	  - advance: 24h
//	  - type: TriggerTax
//	    caller: "@alice"
//	    expect: tesSUCCESS
package scenario

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/LeJamon/goTaxLedger/internal/core/tx"
	"gopkg.in/yaml.v3"
)

// ErrInvalidScenario is wrapped by every load error.
var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario is a parsed scenario file.
type Scenario struct {
	Name     string   `yaml:"name"`
	Accounts []string `yaml:"accounts"`
	Steps    []Step   `yaml:"steps"`
}

// Step is one entry of a scenario. Fields other than the ones below are
// decoded into the transaction named by Type.
type Step struct {
	Name    string        `yaml:"name"`
	Type    string        `yaml:"type"`
	Advance time.Duration `yaml:"advance"`
	Expect  string        `yaml:"expect"`

	node yaml.Node
}

// UnmarshalYAML keeps the raw node so Transaction can decode it later.
func (s *Step) UnmarshalYAML(n *yaml.Node) error {
	type plain Step
	if err := n.Decode((*plain)(s)); err != nil {
		return err
	}
	s.node = *n
	return nil
}

// Transaction builds the step's transaction. It returns nil for a step that
// only advances the clock.
func (s *Step) Transaction() (tx.Transaction, error) {
	if s.Type == "" {
		return nil, nil
	}
	txn, err := tx.NewFromName(s.Type)
	if err != nil {
		return nil, err
	}
	if err := s.node.Decode(txn); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.Type, err)
	}
	return txn, nil
}

// Parse decodes and checks a scenario document.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = path
	}
	return sc, nil
}

// Validate checks every step names a known transaction and a known
// expected result, without decoding the transactions.
func (sc *Scenario) Validate() error {
	if len(sc.Steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrInvalidScenario)
	}
	for i, s := range sc.Steps {
		if s.Type == "" && s.Advance == 0 {
			return fmt.Errorf("%w: step %d has neither type nor advance", ErrInvalidScenario, i+1)
		}
		if s.Advance < 0 {
			return fmt.Errorf("%w: step %d advances by %s", ErrInvalidScenario, i+1, s.Advance)
		}
		if s.Type != "" {
			if _, ok := tx.TypeFromName(s.Type); !ok {
				return fmt.Errorf("%w: step %d: %w: %q", ErrInvalidScenario, i+1, tx.ErrUnknownTransactionType, s.Type)
			}
		}
		if s.Expect != "" {
			if s.Type == "" {
				return fmt.Errorf("%w: step %d expects %s but submits nothing", ErrInvalidScenario, i+1, s.Expect)
			}
			if _, ok := tx.ResultFromName(s.Expect); !ok {
				return fmt.Errorf("%w: step %d: unknown result %q", ErrInvalidScenario, i+1, s.Expect)
			}
		}
	}
	return nil
}
