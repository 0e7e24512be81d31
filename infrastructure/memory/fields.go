package memory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ตัวแปลงค่าใน map[column]value ของ UpdateFields ให้ตรงกับ type ของ struct field

func asString(col string, v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case *string:
		if x == nil {
			return "", nil
		}
		return *x, nil
	}
	return "", fmt.Errorf("column %s: unexpected type %T", col, v)
}

func asBool(col string, v any) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case *bool:
		if x != nil {
			return *x, nil
		}
		return false, nil
	}
	return false, fmt.Errorf("column %s: unexpected type %T", col, v)
}

func asInt(col string, v any) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case *int:
		if x != nil {
			return *x, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("column %s: unexpected type %T", col, v)
}

func asTimePtr(col string, v any) (*time.Time, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &x, nil
	case *time.Time:
		if x == nil {
			return nil, nil
		}
		t := *x
		return &t, nil
	}
	return nil, fmt.Errorf("column %s: unexpected type %T", col, v)
}

func asFloatPtr(col string, v any) (*float64, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case float64:
		return &x, nil
	case *float64:
		if x == nil {
			return nil, nil
		}
		f := *x
		return &f, nil
	}
	return nil, fmt.Errorf("column %s: unexpected type %T", col, v)
}

func asUUIDPtr(col string, v any) (*uuid.UUID, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case uuid.UUID:
		return &x, nil
	case *uuid.UUID:
		if x == nil {
			return nil, nil
		}
		id := *x
		return &id, nil
	}
	return nil, fmt.Errorf("column %s: unexpected type %T", col, v)
}

func asStrings(col string, v any) (pq.StringArray, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case pq.StringArray:
		return append(pq.StringArray(nil), x...), nil
	case []string:
		return append(pq.StringArray(nil), x...), nil
	}
	return nil, fmt.Errorf("column %s: unexpected type %T", col, v)
}

func unknownColumn(table, col string) error {
	return fmt.Errorf("%s: unknown column %q", table, col)
}
