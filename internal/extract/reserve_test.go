package extract

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"blendScope/internal/scval"
)

var reserveCtx = scval.ParsingContext{Function: "get_reserve", Category: scval.CategoryPool}

const testAsset = "CCQZP2D4SABHWEJBFUZJKLUOFQHMSKYRD4FRIBQZSGQHKGRBZI3OAD7Z"

func sym(key string, val scval.Val) scval.MapEntry {
	return scval.MapEntry{Key: scval.Symbol(key), Val: val}
}

func reserveVal() scval.Val {
	config := scval.Map([]scval.MapEntry{
		sym("index", scval.U32(2)),
		sym("decimals", scval.U32(7)),
		sym("c_factor", scval.I128(0, 9_000_000)),
		sym("l_factor", scval.I128(0, 9_500_000)),
		sym("util", scval.I128(0, 8_000_000)),
		sym("max_util", scval.I128(0, 9_500_000)),
		sym("r_base", scval.I128(0, 100_000)),
		sym("r_one", scval.I128(0, 400_000)),
		sym("r_two", scval.I128(0, 2_000_000)),
		sym("r_three", scval.I128(0, 10_000_000)),
		sym("reactivity", scval.I128(0, 100)),
		sym("supply_cap", scval.I128(0, 500_000_000_000_000)),
		sym("enabled", scval.Bool(true)),
	})
	data := scval.Map([]scval.MapEntry{
		sym("total_supplied", scval.I128(0, 1_000_000_000_000)),
		sym("total_borrowed", scval.I128(0, 750_000_000_000)),
		sym("b_rate", scval.I128(0, 800_000)),
		sym("d_rate", scval.I128(0, 500_000)),
		sym("backstop_credit", scval.I128(0, 10_000_000)),
		sym("ir_mod", scval.I128(0, 10_500_000)),
		sym("last_time", scval.U64(1_700_000_000)),
	})
	return scval.Map([]scval.MapEntry{
		sym("asset", scval.Address(testAsset)),
		sym("config", config),
		sym("data", data),
	})
}

func TestReserveDecode(t *testing.T) {
	got, err := Reserve(reserveVal(), reserveCtx)
	if err != nil {
		t.Fatalf("decode reserve: %v", err)
	}

	if got.Asset != testAsset {
		t.Fatalf("asset mismatch: %s", got.Asset)
	}
	if got.Config.Index != 2 || got.Config.Decimals != 7 || !got.Config.Enabled {
		t.Fatalf("config mismatch: %+v", got.Config)
	}

	checks := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"c_factor", got.Config.CollateralFactor, "0.9"},
		{"util", got.Config.Util, "0.8"},
		{"r_base", got.Config.RBase, "0.01"},
		{"r_one", got.Config.ROne, "0.04"},
		{"r_two", got.Config.RTwo, "0.2"},
		{"r_three", got.Config.RThree, "1"},
		{"reactivity", got.Config.Reactivity, "0.00001"},
		{"total_supplied", got.Data.TotalSupplied, "100000"},
		{"total_borrowed", got.Data.TotalBorrowed, "75000"},
		{"b_rate", got.Data.BorrowRate, "0.08"},
		{"d_rate", got.Data.SupplyRate, "0.05"},
		{"ir_mod", got.Data.IRModifier, "1.05"},
	}
	for _, check := range checks {
		want, err := decimal.NewFromString(check.want)
		if err != nil {
			t.Fatalf("parse want %q: %v", check.want, err)
		}
		if !check.got.Equal(want) {
			t.Fatalf("%s mismatch: %s != %s", check.name, check.got, want)
		}
	}

	if got.Data.LastUpdate != 1_700_000_000 {
		t.Fatalf("last_time mismatch: %d", got.Data.LastUpdate)
	}

	util := got.Utilization()
	if !util.Equal(decimal.NewFromFloat(0.75)) {
		t.Fatalf("utilization mismatch: %s", util)
	}
}

func TestReserveDecodeIdempotent(t *testing.T) {
	v := reserveVal()

	first, err := Reserve(v, reserveCtx)
	if err != nil {
		t.Fatalf("first decode: %v", err)
	}
	second, err := Reserve(v, reserveCtx)
	if err != nil {
		t.Fatalf("second decode: %v", err)
	}

	if first.Asset != second.Asset ||
		!first.Config.Util.Equal(second.Config.Util) ||
		!first.Data.TotalSupplied.Equal(second.Data.TotalSupplied) ||
		first.Data.LastUpdate != second.Data.LastUpdate {
		t.Fatalf("decodes differ: %+v != %+v", first, second)
	}
}

func TestReserveMissingAsset(t *testing.T) {
	v := scval.Map([]scval.MapEntry{
		sym("config", scval.Map([]scval.MapEntry{})),
	})

	_, err := Reserve(v, reserveCtx)
	if scval.KindOf(err) != scval.ErrMissingRequiredField {
		t.Fatalf("expected missing_required_field, got %v", err)
	}
	var typed *scval.Error
	if !errors.As(err, &typed) || typed.Field != "asset" {
		t.Fatalf("expected field asset, got %v", err)
	}
}

func TestReserveMissingOptionalFieldsDefaultZero(t *testing.T) {
	// Config map without reactivity or r_three; both default to zero.
	v := scval.Map([]scval.MapEntry{
		sym("asset", scval.Address(testAsset)),
		sym("config", scval.Map([]scval.MapEntry{
			sym("util", scval.I128(0, 8_000_000)),
		})),
	})

	got, err := Reserve(v, reserveCtx)
	if err != nil {
		t.Fatalf("decode reserve: %v", err)
	}
	if !got.Config.Reactivity.IsZero() || !got.Config.RThree.IsZero() {
		t.Fatalf("optional fields should default to zero: %+v", got.Config)
	}
	if !got.Config.Util.Equal(decimal.NewFromFloat(0.8)) {
		t.Fatalf("util mismatch: %s", got.Config.Util)
	}
}

func TestReserveUnknownFieldsIgnored(t *testing.T) {
	v := scval.Map([]scval.MapEntry{
		sym("asset", scval.Address(testAsset)),
		sym("some_future_field", scval.U32(9)),
	})

	if _, err := Reserve(v, reserveCtx); err != nil {
		t.Fatalf("unknown fields should be ignored: %v", err)
	}
}

func TestReserveRejectsNonMap(t *testing.T) {
	if _, err := Reserve(scval.U32(1), reserveCtx); scval.KindOf(err) != scval.ErrInvalidType {
		t.Fatalf("expected invalid_type, got %v", err)
	}
}

func TestReserveRateConfig(t *testing.T) {
	got, err := Reserve(reserveVal(), reserveCtx)
	if err != nil {
		t.Fatalf("decode reserve: %v", err)
	}

	cfg := got.RateConfig()
	if !cfg.TargetUtilization.Equal(decimal.NewFromFloat(0.8)) {
		t.Fatalf("target mismatch: %s", cfg.TargetUtilization)
	}
	if !cfg.IRModifier.Equal(decimal.NewFromFloat(1.05)) {
		t.Fatalf("modifier mismatch: %s", cfg.IRModifier)
	}
}
