package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// DiscountMethod represents how a discount amount is derived
type DiscountMethod int

const (
	DiscountMethodFixed               DiscountMethod = 0
	DiscountMethodPercentageFromTotal DiscountMethod = 1
)

func (m DiscountMethod) String() string {
	switch m {
	case DiscountMethodFixed:
		return "Fixed"
	case DiscountMethodPercentageFromTotal:
		return "PercentageFromTotal"
	default:
		return "Unknown"
	}
}

func (m DiscountMethod) IsValid() bool {
	return m == DiscountMethodFixed || m == DiscountMethodPercentageFromTotal
}

// ParseDiscountMethod accepts the enum names as well as the short
// FIXED / PERCENTAGE forms used by older clients.
func ParseDiscountMethod(str string) (DiscountMethod, error) {
	switch strings.ToUpper(strings.TrimSpace(str)) {
	case "FIXED":
		return DiscountMethodFixed, nil
	case "PERCENTAGE", "PERCENTAGEFROMTOTAL", "PERCENTAGE_FROM_TOTAL":
		return DiscountMethodPercentageFromTotal, nil
	}
	return 0, fmt.Errorf("unknown discount method %q", str)
}

func (m DiscountMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *DiscountMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if !DiscountMethod(i).IsValid() {
			return fmt.Errorf("unknown discount method %d", i)
		}
		*m = DiscountMethod(i)
		return nil
	}
	parsed, err := ParseDiscountMethod(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m DiscountMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *DiscountMethod) Scan(value interface{}) error {
	if value == nil {
		*m = DiscountMethodFixed
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = DiscountMethod(v)
	case int:
		*m = DiscountMethod(v)
	}
	return nil
}
