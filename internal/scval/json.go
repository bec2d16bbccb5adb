package scval

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
)

// valJSON is the envelope used to persist wire values in JSONL captures.
// 64-bit and 128-bit magnitudes are carried as strings so no precision is
// lost to JSON number parsing.
type valJSON struct {
	Type    string           `json:"type"`
	Value   *json.RawMessage `json:"value,omitempty"`
	Hi      string           `json:"hi,omitempty"`
	Lo      string           `json:"lo,omitempty"`
	Items   *[]valJSON       `json:"items,omitempty"`
	Entries *[]entryJSON     `json:"entries,omitempty"`
}

type entryJSON struct {
	Key valJSON `json:"key"`
	Val valJSON `json:"val"`
}

// MarshalJSON encodes the value as a self-describing JSON envelope.
func (v Val) MarshalJSON() ([]byte, error) {
	enc, err := v.toJSON()
	if err != nil {
		return nil, err
	}
	return json.Marshal(enc)
}

// UnmarshalJSON decodes a value from its JSON envelope.
func (v *Val) UnmarshalJSON(data []byte) error {
	var enc valJSON
	if err := json.Unmarshal(data, &enc); err != nil {
		return err
	}
	decoded, err := enc.toVal()
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

func rawString(s string) *json.RawMessage {
	data, _ := json.Marshal(s)
	raw := json.RawMessage(data)
	return &raw
}

func rawLiteral(s string) *json.RawMessage {
	raw := json.RawMessage(s)
	return &raw
}

func (v Val) toJSON() (valJSON, error) {
	out := valJSON{Type: v.kind.String()}
	switch v.kind {
	case KindVoid:
	case KindBool:
		out.Value = rawLiteral(strconv.FormatBool(v.boolVal))
	case KindU32:
		out.Value = rawLiteral(strconv.FormatUint(v.lo, 10))
	case KindI32:
		out.Value = rawLiteral(strconv.FormatInt(v.hi, 10))
	case KindU64:
		out.Value = rawString(strconv.FormatUint(v.lo, 10))
	case KindI64:
		out.Value = rawString(strconv.FormatInt(v.hi, 10))
	case KindI128:
		out.Hi = strconv.FormatInt(v.hi, 10)
		out.Lo = strconv.FormatUint(v.lo, 10)
	case KindU128:
		out.Hi = strconv.FormatUint(uint64(v.hi), 10)
		out.Lo = strconv.FormatUint(v.lo, 10)
	case KindSymbol, KindString, KindAddress:
		out.Value = rawString(v.str)
	case KindBytes:
		out.Value = rawString(hex.EncodeToString(v.bytes))
	case KindVec:
		if v.vecSet {
			items := make([]valJSON, 0, len(v.vec))
			for _, item := range v.vec {
				enc, err := item.toJSON()
				if err != nil {
					return valJSON{}, err
				}
				items = append(items, enc)
			}
			out.Items = &items
		}
	case KindMap:
		if v.mapSet {
			entries := make([]entryJSON, 0, len(v.entries))
			for _, entry := range v.entries {
				key, err := entry.Key.toJSON()
				if err != nil {
					return valJSON{}, err
				}
				val, err := entry.Val.toJSON()
				if err != nil {
					return valJSON{}, err
				}
				entries = append(entries, entryJSON{Key: key, Val: val})
			}
			out.Entries = &entries
		}
	default:
		return valJSON{}, fmt.Errorf("unknown value kind %d", v.kind)
	}
	return out, nil
}

func (enc valJSON) toVal() (Val, error) {
	switch enc.Type {
	case "void":
		return Void(), nil
	case "bool":
		var b bool
		if err := unmarshalValue(enc.Value, &b); err != nil {
			return Val{}, err
		}
		return Bool(b), nil
	case "u32":
		var u uint32
		if err := unmarshalValue(enc.Value, &u); err != nil {
			return Val{}, err
		}
		return U32(u), nil
	case "i32":
		var i int32
		if err := unmarshalValue(enc.Value, &i); err != nil {
			return Val{}, err
		}
		return I32(i), nil
	case "u64":
		s, err := stringValue(enc.Value)
		if err != nil {
			return Val{}, err
		}
		u, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return Val{}, fmt.Errorf("parse u64: %w", err)
		}
		return U64(u), nil
	case "i64":
		s, err := stringValue(enc.Value)
		if err != nil {
			return Val{}, err
		}
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Val{}, fmt.Errorf("parse i64: %w", err)
		}
		return I64(i), nil
	case "i128":
		hi, err := strconv.ParseInt(enc.Hi, 10, 64)
		if err != nil {
			return Val{}, fmt.Errorf("parse i128 hi: %w", err)
		}
		lo, err := strconv.ParseUint(enc.Lo, 10, 64)
		if err != nil {
			return Val{}, fmt.Errorf("parse i128 lo: %w", err)
		}
		return I128(hi, lo), nil
	case "u128":
		hi, err := strconv.ParseUint(enc.Hi, 10, 64)
		if err != nil {
			return Val{}, fmt.Errorf("parse u128 hi: %w", err)
		}
		lo, err := strconv.ParseUint(enc.Lo, 10, 64)
		if err != nil {
			return Val{}, fmt.Errorf("parse u128 lo: %w", err)
		}
		return U128(hi, lo), nil
	case "symbol":
		s, err := stringValue(enc.Value)
		if err != nil {
			return Val{}, err
		}
		return Symbol(s), nil
	case "string":
		s, err := stringValue(enc.Value)
		if err != nil {
			return Val{}, err
		}
		return Str(s), nil
	case "address":
		s, err := stringValue(enc.Value)
		if err != nil {
			return Val{}, err
		}
		return Address(s), nil
	case "bytes":
		s, err := stringValue(enc.Value)
		if err != nil {
			return Val{}, err
		}
		raw, err := hex.DecodeString(s)
		if err != nil {
			return Val{}, fmt.Errorf("parse bytes: %w", err)
		}
		return Bytes(raw), nil
	case "vec":
		if enc.Items == nil {
			return Vec(nil), nil
		}
		items := make([]Val, 0, len(*enc.Items))
		for _, item := range *enc.Items {
			decoded, err := item.toVal()
			if err != nil {
				return Val{}, err
			}
			items = append(items, decoded)
		}
		return Vec(items), nil
	case "map":
		if enc.Entries == nil {
			return Map(nil), nil
		}
		entries := make([]MapEntry, 0, len(*enc.Entries))
		for _, entry := range *enc.Entries {
			key, err := entry.Key.toVal()
			if err != nil {
				return Val{}, err
			}
			val, err := entry.Val.toVal()
			if err != nil {
				return Val{}, err
			}
			entries = append(entries, MapEntry{Key: key, Val: val})
		}
		return Map(entries), nil
	default:
		return Val{}, fmt.Errorf("unknown value type %q", enc.Type)
	}
}

func unmarshalValue(raw *json.RawMessage, out interface{}) error {
	if raw == nil {
		return fmt.Errorf("missing value")
	}
	return json.Unmarshal(*raw, out)
}

func stringValue(raw *json.RawMessage) (string, error) {
	var s string
	if err := unmarshalValue(raw, &s); err != nil {
		return "", err
	}
	return s, nil
}
