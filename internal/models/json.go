package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// The nested blocks on User and JobApplication are stored as single JSON
// columns. A block is written and read as a whole; partial updates replace the
// entire block (see the service-layer merge rules).

func jsonValue(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonScan(src, dst any) error {
	if src == nil {
		return nil
	}
	switch data := src.(type) {
	case []byte:
		return json.Unmarshal(data, dst)
	case string:
		return json.Unmarshal([]byte(data), dst)
	default:
		return fmt.Errorf("unsupported json column type %T", src)
	}
}
