package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// TransactionType represents the kind of settlement event
type TransactionType int

const (
	TransactionTypePurchase TransactionType = 0
	TransactionTypeRefund   TransactionType = 1
)

var transactionTypeNames = [...]string{"Purchase", "Refund"}

func (t TransactionType) String() string {
	if int(t) < 0 || int(t) >= len(transactionTypeNames) {
		return "Unknown"
	}
	return transactionTypeNames[t]
}

func (t TransactionType) IsValid() bool {
	return int(t) >= 0 && int(t) < len(transactionTypeNames)
}

// ParseTransactionType parses a transaction type name case-insensitively
func ParseTransactionType(str string) (TransactionType, error) {
	for i, name := range transactionTypeNames {
		if strings.EqualFold(strings.TrimSpace(str), name) {
			return TransactionType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown transaction type %q", str)
}

func (t TransactionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TransactionType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if !TransactionType(i).IsValid() {
			return fmt.Errorf("unknown transaction type %d", i)
		}
		*t = TransactionType(i)
		return nil
	}
	parsed, err := ParseTransactionType(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t TransactionType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *TransactionType) Scan(value interface{}) error {
	if value == nil {
		*t = 0
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = TransactionType(v)
	case int:
		*t = TransactionType(v)
	}
	return nil
}
