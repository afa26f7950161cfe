package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// OrderStatus represents the status of an order
type OrderStatus int

const (
	OrderStatusOpen     OrderStatus = 0
	OrderStatusClosed   OrderStatus = 1
	OrderStatusRefunded OrderStatus = 2
)

var orderStatusNames = [...]string{"Open", "Closed", "Refunded"}

func (s OrderStatus) String() string {
	if int(s) < 0 || int(s) >= len(orderStatusNames) {
		return "Unknown"
	}
	return orderStatusNames[s]
}

// IsValid reports whether s is one of the declared statuses
func (s OrderStatus) IsValid() bool {
	return int(s) >= 0 && int(s) < len(orderStatusNames)
}

// ParseOrderStatus parses a status name case-insensitively
func ParseOrderStatus(str string) (OrderStatus, error) {
	for i, name := range orderStatusNames {
		if strings.EqualFold(strings.TrimSpace(str), name) {
			return OrderStatus(i), nil
		}
	}
	return 0, fmt.Errorf("unknown order status %q", str)
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if !OrderStatus(i).IsValid() {
			return fmt.Errorf("unknown order status %d", i)
		}
		*s = OrderStatus(i)
		return nil
	}
	parsed, err := ParseOrderStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusOpen
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	}
	return nil
}
