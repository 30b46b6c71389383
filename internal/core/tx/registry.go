package tx

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrUnknownTransactionType is returned when a transaction type is unknown
var ErrUnknownTransactionType = errors.New("unknown transaction type")

var (
	factoriesMu sync.RWMutex
	factories   = make(map[Type]func() Transaction)
)

// Register makes a transaction type constructible by NewFromType. Sub-packages
// call it from init.
func Register(t Type, factory func() Transaction) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	if _, dup := factories[t]; dup {
		panic(fmt.Sprintf("tx: type %s registered twice", t))
	}
	factories[t] = factory
}

// NewFromType creates a new transaction of the given type
func NewFromType(txType Type) (Transaction, error) {
	factoriesMu.RLock()
	factory, ok := factories[txType]
	factoriesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTransactionType, txType)
	}
	return factory(), nil
}

// NewFromName creates a new transaction from its type name
func NewFromName(name string) (Transaction, error) {
	t, ok := TypeFromName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransactionType, name)
	}
	return NewFromType(t)
}

// FromJSON creates a Transaction from a JSON object carrying a "type" field
func FromJSON(data []byte) (Transaction, error) {
	var raw struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	tx, err := NewFromName(raw.Type)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// SupportedTypes returns all registered transaction types in code order
func SupportedTypes() []Type {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	out := make([]Type, 0, len(factories))
	for t := range factories {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}
