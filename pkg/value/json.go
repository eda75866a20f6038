package value

import (
	"fmt"
	"strconv"

	"github.com/buger/jsonparser"
)

// ParseJSON decodes a JSON document into a Value, preserving object key order.
func ParseJSON(data []byte) (Value, error) {
	raw, typ, _, err := jsonparser.Get(data)
	if err != nil {
		return Value{}, fmt.Errorf("parse json: %w", err)
	}
	return fromToken(raw, typ)
}

func fromToken(raw []byte, typ jsonparser.ValueType) (Value, error) {
	switch typ {
	case jsonparser.Null:
		return Null(), nil
	case jsonparser.String:
		s, err := jsonparser.ParseString(raw)
		if err != nil {
			return Value{}, err
		}
		return String(s), nil
	case jsonparser.Number:
		f, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			return Value{}, err
		}
		return Number(f), nil
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(raw)
		if err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case jsonparser.Array:
		var (
			items   []Value
			itemErr error
		)
		_, err := jsonparser.ArrayEach(raw, func(elem []byte, t jsonparser.ValueType, _ int, _ error) {
			if itemErr != nil {
				return
			}
			v, err := fromToken(elem, t)
			if err != nil {
				itemErr = err
				return
			}
			items = append(items, v)
		})
		if err != nil {
			return Value{}, err
		}
		if itemErr != nil {
			return Value{}, itemErr
		}
		return List(items...), nil
	case jsonparser.Object:
		m := NewMap()
		err := jsonparser.ObjectEach(raw, func(key, val []byte, t jsonparser.ValueType, _ int) error {
			k, err := jsonparser.ParseString(key)
			if err != nil {
				return err
			}
			v, err := fromToken(val, t)
			if err != nil {
				return fmt.Errorf("key %q: %w", k, err)
			}
			m.Set(k, v)
			return nil
		})
		if err != nil {
			return Value{}, err
		}
		return Object(m), nil
	default:
		return Value{}, fmt.Errorf("unsupported json token %v", typ)
	}
}
