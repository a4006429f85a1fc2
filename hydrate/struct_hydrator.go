package hydrate

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// StructHydrator 基于反射的类型化填充器，按 json tag 匹配字段，
// 支持嵌套结构体、指针、切片，以及数据库驱动常见的标量宽化转换
type StructHydrator struct{}

func NewStructHydrator() *StructHydrator {
	return &StructHydrator{}
}

func (h *StructHydrator) Hydrate(data map[string]any, dest any) error {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return errors.Errorf("dest must be a pointer to struct, got %T", dest)
	}
	return h.hydrateStruct(data, rv.Elem())
}

func (h *StructHydrator) hydrateStruct(data map[string]any, rv reflect.Value) error {
	rt := rv.Type()
	for i := 0; i < rv.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		fieldName := field.Name
		if tag := field.Tag.Get("json"); tag != "" && tag != "-" {
			if idx := strings.Index(tag, ","); idx != -1 {
				fieldName = tag[:idx]
			} else {
				fieldName = tag
			}
		}

		value, exists := data[fieldName]
		if !exists || value == nil {
			continue
		}

		fieldValue := rv.Field(i)
		if !fieldValue.CanSet() {
			continue
		}
		if err := h.setFieldValue(fieldValue, value); err != nil {
			return errors.WithMessagef(err, "field %s", fieldName)
		}
	}
	return nil
}

func (h *StructHydrator) setFieldValue(fieldValue reflect.Value, value any) error {
	if value == nil {
		return nil
	}

	fieldType := fieldValue.Type()

	// TEXT 列多数驱动返回 []byte，目标不是 []byte 时先归一成 string
	if bs, ok := value.([]byte); ok && fieldType != reflect.TypeOf([]byte(nil)) {
		value = string(bs)
	}

	if fieldType.Kind() == reflect.Ptr {
		if fieldValue.IsNil() {
			fieldValue.Set(reflect.New(fieldType.Elem()))
		}
		return h.setFieldValue(fieldValue.Elem(), value)
	}

	if nested, ok := value.(map[string]any); ok {
		if fieldType.Kind() == reflect.Struct && fieldType != reflect.TypeOf(time.Time{}) {
			return h.hydrateStruct(nested, fieldValue)
		}
		if fieldType.Kind() == reflect.Map && reflect.TypeOf(value).AssignableTo(fieldType) {
			fieldValue.Set(reflect.ValueOf(value))
			return nil
		}
	}

	if elems, ok := value.([]any); ok && fieldType.Kind() == reflect.Slice {
		out := reflect.MakeSlice(fieldType, len(elems), len(elems))
		for i, elem := range elems {
			if err := h.setFieldValue(out.Index(i), elem); err != nil {
				return errors.WithMessagef(err, "index %d", i)
			}
		}
		fieldValue.Set(out)
		return nil
	}

	// MySQL BOOLEAN 字段返回 int64
	if fieldType.Kind() == reflect.Bool {
		switch v := value.(type) {
		case bool:
			fieldValue.SetBool(v)
			return nil
		case int64:
			fieldValue.SetBool(v != 0)
			return nil
		case int:
			fieldValue.SetBool(v != 0)
			return nil
		}
	}

	if fieldType == reflect.TypeOf(time.Time{}) {
		switch v := value.(type) {
		case time.Time:
			fieldValue.Set(reflect.ValueOf(v))
			return nil
		case string:
			parsed, err := parseTime(v)
			if err != nil {
				return err
			}
			fieldValue.Set(reflect.ValueOf(parsed))
			return nil
		}
	}

	// 执行引擎可能把数字列以文本返回，比如版本号
	if text, ok := value.(string); ok {
		switch fieldType.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			n, err := strconv.ParseInt(text, 10, 64)
			if err != nil {
				return errors.Errorf("cannot parse %q as int", text)
			}
			fieldValue.SetInt(n)
			return nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			n, err := strconv.ParseUint(text, 10, 64)
			if err != nil {
				return errors.Errorf("cannot parse %q as uint", text)
			}
			fieldValue.SetUint(n)
			return nil
		case reflect.Float32, reflect.Float64:
			f, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return errors.Errorf("cannot parse %q as float", text)
			}
			fieldValue.SetFloat(f)
			return nil
		case reflect.Bool:
			b, err := strconv.ParseBool(text)
			if err != nil {
				return errors.Errorf("cannot parse %q as bool", text)
			}
			fieldValue.SetBool(b)
			return nil
		}
	}

	valueType := reflect.TypeOf(value)
	if valueType.AssignableTo(fieldType) {
		fieldValue.Set(reflect.ValueOf(value))
		return nil
	}
	if valueType.ConvertibleTo(fieldType) {
		fieldValue.Set(reflect.ValueOf(value).Convert(fieldType))
		return nil
	}

	return errors.Errorf("cannot convert %v to %v", valueType, fieldType)
}

// 尝试多种时间格式解析
var timeFormats = []string{
	"2006-01-02 15:04:05.999999-07:00", // SQLite 格式
	"2006-01-02 15:04:05.999999+07:00", // SQLite 格式
	"2006-01-02 15:04:05",              // 标准格式
	time.RFC3339,
	time.RFC3339Nano,
}

func parseTime(text string) (time.Time, error) {
	var lastErr error
	for _, format := range timeFormats {
		parsed, err := time.Parse(format, text)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, errors.Errorf("cannot parse time string %s: %v", text, lastErr)
}
