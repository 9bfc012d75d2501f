package hwp

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

func getString(params map[string]interface{}, key string) string {
	switch v := params[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func requireString(params map[string]interface{}, key string) (string, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return "", fmt.Errorf("%s required", key)
	}
	return getString(params, key), nil
}

func getFloat(params map[string]interface{}, key string) (float64, bool) {
	switch v := params[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint32:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func requireFloat(params map[string]interface{}, key string) (float64, error) {
	f, ok := getFloat(params, key)
	if !ok {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	return f, nil
}

func requireInt(params map[string]interface{}, key string) (int, error) {
	f, err := requireFloat(params, key)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return int(f), nil
}

func getBool(params map[string]interface{}, key string, def bool) bool {
	switch v := params[key].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return def
		}
		return b
	default:
		if f, ok := getFloat(params, key); ok {
			return f != 0
		}
		return def
	}
}

// getCells accepts a row-major grid or a flat list chunked by cols
func getCells(params map[string]interface{}, key string, cols int, chunk func([]string, int) [][]string) ([][]string, error) {
	raw, ok := params[key]
	if !ok || raw == nil {
		return nil, nil
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s must be a list", key)
	}

	nested := len(items) > 0
	for _, it := range items {
		if _, isList := it.([]interface{}); !isList {
			nested = false
			break
		}
	}
	if !nested {
		flat := make([]string, len(items))
		for i, it := range items {
			flat[i] = cellString(it)
		}
		return chunk(flat, cols), nil
	}

	grid := make([][]string, len(items))
	for i, it := range items {
		row := it.([]interface{})
		grid[i] = make([]string, len(row))
		for j, cell := range row {
			grid[i][j] = cellString(cell)
		}
	}
	return grid, nil
}

func cellString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
