package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// PaymentMethod represents the instrument used for a payment
type PaymentMethod int

const (
	PaymentMethodCash     PaymentMethod = 0
	PaymentMethodGiftcard PaymentMethod = 1
	PaymentMethodBankcard PaymentMethod = 2
)

var paymentMethodNames = [...]string{"Cash", "Giftcard", "Bankcard"}

func (t PaymentMethod) String() string {
	if int(t) < 0 || int(t) >= len(paymentMethodNames) {
		return "Unknown"
	}
	return paymentMethodNames[t]
}

func (t PaymentMethod) IsValid() bool {
	return int(t) >= 0 && int(t) < len(paymentMethodNames)
}

// ParsePaymentMethod parses a payment method name case-insensitively
func ParsePaymentMethod(str string) (PaymentMethod, error) {
	for i, name := range paymentMethodNames {
		if strings.EqualFold(strings.TrimSpace(str), name) {
			return PaymentMethod(i), nil
		}
	}
	return 0, fmt.Errorf("unknown payment method %q", str)
}

func (t PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if !PaymentMethod(i).IsValid() {
			return fmt.Errorf("unknown payment method %d", i)
		}
		*t = PaymentMethod(i)
		return nil
	}
	parsed, err := ParsePaymentMethod(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t PaymentMethod) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*t = 0
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = PaymentMethod(v)
	case int:
		*t = PaymentMethod(v)
	}
	return nil
}
