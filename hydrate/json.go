package hydrate

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// DecodeJSONFields 对声明为 JSON 的列做选择性解码，返回新的 map，不修改入参。
// 只有列存在且值为非空字符串时才解码；未声明的列即使内容形似 JSON 也原样保留。
func DecodeJSONFields(row map[string]any, fields []string) (map[string]any, error) {
	result := make(map[string]any, len(row))
	for key, value := range row {
		result[key] = value
	}

	for _, field := range fields {
		value, ok := result[field]
		if !ok || value == nil {
			continue
		}
		text, ok := value.(string)
		if !ok {
			continue
		}

		var decoded any
		if err := json.Unmarshal([]byte(text), &decoded); err != nil {
			return nil, errors.WithMessagef(ErrDecode, "column %s: %v", field, err)
		}
		result[field] = decoded
	}

	return result, nil
}
