package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// OrderItemType distinguishes billed products from billed services
type OrderItemType int

const (
	OrderItemTypeProduct OrderItemType = 0
	OrderItemTypeService OrderItemType = 1
)

var orderItemTypeNames = [...]string{"Product", "Service"}

func (t OrderItemType) String() string {
	if int(t) < 0 || int(t) >= len(orderItemTypeNames) {
		return "Unknown"
	}
	return orderItemTypeNames[t]
}

func (t OrderItemType) IsValid() bool {
	return int(t) >= 0 && int(t) < len(orderItemTypeNames)
}

// ParseOrderItemType parses a order item type name case-insensitively
func ParseOrderItemType(str string) (OrderItemType, error) {
	for i, name := range orderItemTypeNames {
		if strings.EqualFold(strings.TrimSpace(str), name) {
			return OrderItemType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown order item type %q", str)
}

func (t OrderItemType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *OrderItemType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if !OrderItemType(i).IsValid() {
			return fmt.Errorf("unknown order item type %d", i)
		}
		*t = OrderItemType(i)
		return nil
	}
	parsed, err := ParseOrderItemType(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t OrderItemType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *OrderItemType) Scan(value interface{}) error {
	if value == nil {
		*t = 0
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = OrderItemType(v)
	case int:
		*t = OrderItemType(v)
	}
	return nil
}
