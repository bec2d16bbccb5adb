package extract

import (
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"blendScope/internal/scval"
)

var backstopCtx = scval.ParsingContext{Function: "user_balance", Category: scval.CategoryBackstop}

func TestUserBalanceDecode(t *testing.T) {
	v := scval.Map([]scval.MapEntry{
		sym("shares", scval.I128(0, 1_000_000_000)),
		sym("q4w", scval.Vec([]scval.Val{
			scval.Map([]scval.MapEntry{
				sym("amount", scval.I128(0, 250_000_000)),
				sym("exp", scval.U64(1_700_100_000)),
			}),
			scval.Map([]scval.MapEntry{
				sym("amount", scval.I128(0, 50_000_000)),
				sym("exp", scval.U64(1_700_200_000)),
			}),
		})),
	})

	got, err := UserBalance(v, backstopCtx, zap.NewNop())
	if err != nil {
		t.Fatalf("decode user balance: %v", err)
	}

	if !got.Shares.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("shares mismatch: %s", got.Shares)
	}
	if len(got.Queue) != 2 {
		t.Fatalf("queue length mismatch: %d", len(got.Queue))
	}
	if got.Queue[0].Expiration != 1_700_100_000 {
		t.Fatalf("expiration mismatch: %d", got.Queue[0].Expiration)
	}
	if !got.QueuedTotal().Equal(decimal.NewFromInt(30)) {
		t.Fatalf("queued total mismatch: %s", got.QueuedTotal())
	}
}

func TestUserBalanceSkipsBadQueueEntries(t *testing.T) {
	v := scval.Map([]scval.MapEntry{
		sym("shares", scval.I128(0, 10_000_000)),
		sym("q4w", scval.Vec([]scval.Val{
			scval.U32(7),
			scval.Map([]scval.MapEntry{
				sym("amount", scval.I128(0, 10_000_000)),
				sym("exp", scval.U64(1)),
			}),
		})),
	})

	got, err := UserBalance(v, backstopCtx, zap.NewNop())
	if err != nil {
		t.Fatalf("decode user balance: %v", err)
	}
	if len(got.Queue) != 1 {
		t.Fatalf("expected one surviving entry, got %d", len(got.Queue))
	}
}

func TestUserBalanceEmptyQueueDefaults(t *testing.T) {
	v := scval.Map([]scval.MapEntry{
		sym("shares", scval.I128(0, 10_000_000)),
	})

	got, err := UserBalance(v, backstopCtx, zap.NewNop())
	if err != nil {
		t.Fatalf("decode user balance: %v", err)
	}
	if len(got.Queue) != 0 {
		t.Fatalf("expected empty queue")
	}
	if !got.QueuedTotal().IsZero() {
		t.Fatalf("queued total should be zero")
	}
}

func TestBackstopPoolDataDecode(t *testing.T) {
	v := scval.Map([]scval.MapEntry{
		sym("tokens", scval.I128(0, 5_000_000_000)),
		sym("shares", scval.I128(0, 4_000_000_000)),
		sym("q4w", scval.I128(0, 1_000_000_000)),
	})

	got, err := BackstopPoolData(v, backstopCtx)
	if err != nil {
		t.Fatalf("decode backstop pool data: %v", err)
	}
	if !got.Tokens.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("tokens mismatch: %s", got.Tokens)
	}
	if !got.QueuedForWithdrawal.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("q4w mismatch: %s", got.QueuedForWithdrawal)
	}
}

func TestEmissionsDecode(t *testing.T) {
	emissionCtx := scval.ParsingContext{Function: "pool_emissions", Category: scval.CategoryEmission}

	pool := scval.Map([]scval.MapEntry{
		sym("index", scval.I128(0, 123_456_789)),
		sym("last_time", scval.U64(1_700_000_000)),
	})
	poolData, err := scval.Decode(pool, emissionCtx, BackstopEmissionsDecoder{})
	if err != nil {
		t.Fatalf("decode backstop emissions: %v", err)
	}
	want, _ := decimal.NewFromString("12.3456789")
	if !poolData.Index.Equal(want) {
		t.Fatalf("index mismatch: %s", poolData.Index)
	}
	if poolData.LastTime != 1_700_000_000 {
		t.Fatalf("last_time mismatch: %d", poolData.LastTime)
	}

	user := scval.Map([]scval.MapEntry{
		sym("index", scval.I128(0, 123_456_789)),
		sym("accrued", scval.I128(0, 70_000_000)),
	})
	userData, err := scval.Decode(user, emissionCtx, UserEmissionsDecoder{})
	if err != nil {
		t.Fatalf("decode user emissions: %v", err)
	}
	if !userData.Accrued.Equal(decimal.NewFromInt(7)) {
		t.Fatalf("accrued mismatch: %s", userData.Accrued)
	}
}
