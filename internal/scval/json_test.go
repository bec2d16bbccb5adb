package scval

import (
	"encoding/json"
	"math"
	"testing"
)

func TestValJSONRoundTrip(t *testing.T) {
	cases := []Val{
		Void(),
		Bool(true),
		U32(42),
		I32(-42),
		U64(math.MaxUint64),
		I64(math.MinInt64),
		I128(-1, math.MaxUint64-10_000_000+1),
		U128(math.MaxUint64, math.MaxUint64),
		Symbol("asset"),
		Str("a general string"),
		Bytes([]byte{0xde, 0xad, 0xbe, 0xef}),
		Address("CCQZP2D4SABHWEJBFUZJKLUOFQHMSKYRD4FRIBQZSGQHKGRBZI3OAD7Z"),
		Vec(nil),
		Vec([]Val{U32(1), Symbol("two")}),
		Map(nil),
		Map([]MapEntry{{Key: Symbol("price"), Val: I128(0, 123)}}),
	}

	for _, want := range cases {
		data, err := json.Marshal(want)
		if err != nil {
			t.Fatalf("marshal %s: %v", want.Kind(), err)
		}
		var got Val
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal %s: %v", want.Kind(), err)
		}
		if got.Kind() != want.Kind() {
			t.Fatalf("kind mismatch after round trip: %s != %s", got.Kind(), want.Kind())
		}

		before, err := json.Marshal(want)
		if err != nil {
			t.Fatalf("remarshal: %v", err)
		}
		after, err := json.Marshal(got)
		if err != nil {
			t.Fatalf("remarshal decoded: %v", err)
		}
		if string(before) != string(after) {
			t.Fatalf("round trip not stable for %s: %s != %s", want.Kind(), before, after)
		}
	}
}

func TestValJSONLargeIntsAsStrings(t *testing.T) {
	data, err := json.Marshal(U64(math.MaxUint64))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var envelope map[string]interface{}
	if err := json.Unmarshal(data, &envelope); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := envelope["value"].(string); !ok {
		t.Fatalf("u64 value should be a JSON string: %s", data)
	}
}

func TestValJSONNilVsEmptyVec(t *testing.T) {
	nilData, err := json.Marshal(Vec(nil))
	if err != nil {
		t.Fatalf("marshal nil vec: %v", err)
	}
	emptyData, err := json.Marshal(Vec([]Val{}))
	if err != nil {
		t.Fatalf("marshal empty vec: %v", err)
	}
	if string(nilData) == string(emptyData) {
		t.Fatalf("nil and empty vec should encode differently: %s", nilData)
	}

	var decoded Val
	if err := json.Unmarshal(nilData, &decoded); err != nil {
		t.Fatalf("unmarshal nil vec: %v", err)
	}
	if _, err := DecodeVec(decoded, ParsingContext{}); KindOf(err) != ErrMalformedResponse {
		t.Fatalf("nil vec should stay nil after round trip: %v", err)
	}

	if err := json.Unmarshal(emptyData, &decoded); err != nil {
		t.Fatalf("unmarshal empty vec: %v", err)
	}
	items, err := DecodeVec(decoded, ParsingContext{})
	if err != nil {
		t.Fatalf("empty vec should decode: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty vec")
	}
}

func TestValJSONUnknownType(t *testing.T) {
	var decoded Val
	if err := json.Unmarshal([]byte(`{"type":"timepoint","value":"1"}`), &decoded); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}
