package firestore

import (
	"encoding/json"
	"fmt"
	"strconv"
)

const nullValue = "NULL_VALUE"

// EncodeFields converts a plain field map into Firestore typed values.
func EncodeFields(fields map[string]any) (map[string]Value, error) {
	out := make(map[string]Value, len(fields))
	for k, v := range fields {
		enc, err := encodeValue(v)
		if err != nil {
			return nil, fmt.Errorf("encoding field %q: %w", k, err)
		}
		out[k] = enc
	}
	return out, nil
}

// DecodeFields converts Firestore typed values into a plain field map.
// Numbers decode to json.Number.
func DecodeFields(fields map[string]Value) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = decodeValue(v)
	}
	return out
}

func encodeValue(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		s := nullValue
		return Value{NullValue: &s}, nil
	case bool:
		return Value{BooleanValue: &x}, nil
	case string:
		return Value{StringValue: &x}, nil
	case int:
		s := strconv.Itoa(x)
		return Value{IntegerValue: &s}, nil
	case int64:
		s := strconv.FormatInt(x, 10)
		return Value{IntegerValue: &s}, nil
	case float64:
		return Value{DoubleValue: &x}, nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			s := strconv.FormatInt(i, 10)
			return Value{IntegerValue: &s}, nil
		}
		f, err := x.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("invalid number %q", x)
		}
		return Value{DoubleValue: &f}, nil
	case []any:
		arr := &ArrayValue{Values: make([]Value, 0, len(x))}
		for _, item := range x {
			enc, err := encodeValue(item)
			if err != nil {
				return Value{}, err
			}
			arr.Values = append(arr.Values, enc)
		}
		return Value{ArrayValue: arr}, nil
	case map[string]any:
		fields, err := EncodeFields(x)
		if err != nil {
			return Value{}, err
		}
		return Value{MapValue: &MapValue{Fields: fields}}, nil
	default:
		return Value{}, fmt.Errorf("unsupported type %T", v)
	}
}

func decodeValue(v Value) any {
	switch {
	case v.BooleanValue != nil:
		return *v.BooleanValue
	case v.IntegerValue != nil:
		return json.Number(*v.IntegerValue)
	case v.DoubleValue != nil:
		return json.Number(strconv.FormatFloat(*v.DoubleValue, 'f', -1, 64))
	case v.StringValue != nil:
		return *v.StringValue
	case v.TimestampValue != nil:
		return *v.TimestampValue
	case v.ArrayValue != nil:
		out := make([]any, 0, len(v.ArrayValue.Values))
		for _, item := range v.ArrayValue.Values {
			out = append(out, decodeValue(item))
		}
		return out
	case v.MapValue != nil:
		return DecodeFields(v.MapValue.Fields)
	default:
		return nil
	}
}
