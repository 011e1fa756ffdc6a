package database

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
)

// Number is a numeric column value kept in the form the client sent it.
// It decodes from a JSON number or from a JSON string holding a number,
// so 30.5 stays 30.5 and "30" is stored as 30. The zero value is null.
type Number string

// NumberFromInt returns the Number for v.
func NumberFromInt(v int64) Number {
	return Number(strconv.FormatInt(v, 10))
}

func (n *Number) UnmarshalJSON(data []byte) error {
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("not a number: %s", data)
	}
	*n = Number(num)
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if n == "" {
		return []byte("null"), nil
	}
	return []byte(n), nil
}

// Value hands the decimal text to the driver; column affinity (SQLite) or
// the column type (Postgres) turns it into a number.
func (n Number) Value() (driver.Value, error) {
	if n == "" {
		return nil, nil
	}
	return string(n), nil
}

func (n *Number) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*n = ""
	case int64:
		*n = NumberFromInt(v)
	case float64:
		*n = Number(strconv.FormatFloat(v, 'f', -1, 64))
	case []byte:
		*n = Number(v)
	case string:
		*n = Number(v)
	default:
		return fmt.Errorf("cannot scan %T into Number", src)
	}
	return nil
}
