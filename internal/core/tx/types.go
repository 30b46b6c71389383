package tx

import "fmt"

// Type represents a transaction type code
type Type uint16

// Transaction type codes
const (
	TypeInvalid Type = 0xFFFF // Invalid/unknown type

	// Token transactions
	TypeTransfer     Type = 0
	TypeTransferFrom Type = 1
	TypeApprove      Type = 2

	// Tax configuration transactions (operator only)
	TypeSetTax                Type = 10
	TypeSetBuybackFee         Type = 11
	TypeSetTaxAllocation      Type = 12
	TypeSetWallet             Type = 13
	TypeSetLPAddress          Type = 14
	TypeSetExemptions         Type = 15
	TypeSetLimits             Type = 16
	TypeSetSellAllowance      Type = 17
	TypeSetCycleLength        Type = 18
	TypeLinkSellers           Type = 19
	TypeUnlinkSeller          Type = 20
	TypeSetDistributionPolicy Type = 21
	TypeSetOperator           Type = 22

	// Distribution
	TypeTriggerTax Type = 30
)

var typeNames = map[Type]string{
	TypeTransfer:              "Transfer",
	TypeTransferFrom:          "TransferFrom",
	TypeApprove:               "Approve",
	TypeSetTax:                "SetTax",
	TypeSetBuybackFee:         "SetBuybackFee",
	TypeSetTaxAllocation:      "SetTaxAllocation",
	TypeSetWallet:             "SetWallet",
	TypeSetLPAddress:          "SetLPAddress",
	TypeSetExemptions:         "SetExemptions",
	TypeSetLimits:             "SetLimits",
	TypeSetSellAllowance:      "SetMaxSellAllowanceMultiplier",
	TypeSetCycleLength:        "SetCycleLength",
	TypeLinkSellers:           "LinkSellers",
	TypeUnlinkSeller:          "UnlinkSeller",
	TypeSetDistributionPolicy: "SetDistributionPolicy",
	TypeSetOperator:           "SetOperator",
	TypeTriggerTax:            "TriggerTax",
}

// String returns the string name of the transaction type
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", uint16(t))
}

// TypeFromName returns the transaction type for a name
func TypeFromName(name string) (Type, bool) {
	for t, n := range typeNames {
		if n == name {
			return t, true
		}
	}
	return TypeInvalid, false
}

// MarshalText encodes the type as its name
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a type name
func (t *Type) UnmarshalText(text []byte) error {
	v, ok := TypeFromName(string(text))
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTransactionType, text)
	}
	*t = v
	return nil
}
