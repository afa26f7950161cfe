package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Currency is the ISO currency of an order and its payments
type Currency int

const (
	CurrencyEUR Currency = 0
	CurrencyUSD Currency = 1
	CurrencyGBP Currency = 2
)

var currencyNames = [...]string{"EUR", "USD", "GBP"}

func (t Currency) String() string {
	if int(t) < 0 || int(t) >= len(currencyNames) {
		return "Unknown"
	}
	return currencyNames[t]
}

func (t Currency) IsValid() bool {
	return int(t) >= 0 && int(t) < len(currencyNames)
}

// ParseCurrency parses a currency name case-insensitively
func ParseCurrency(str string) (Currency, error) {
	for i, name := range currencyNames {
		if strings.EqualFold(strings.TrimSpace(str), name) {
			return Currency(i), nil
		}
	}
	return 0, fmt.Errorf("unknown currency %q", str)
}

func (t Currency) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Currency) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if !Currency(i).IsValid() {
			return fmt.Errorf("unknown currency %d", i)
		}
		*t = Currency(i)
		return nil
	}
	parsed, err := ParseCurrency(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Currency) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *Currency) Scan(value interface{}) error {
	if value == nil {
		*t = 0
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = Currency(v)
	case int:
		*t = Currency(v)
	}
	return nil
}
