// Package rates converts decoded reserve state into annualized interest
// rates using the protocol's three-segment kinked utilization curve.
package rates

import (
	"github.com/shopspring/decimal"

	"blendScope/internal/model"
)

var (
	// EmergencyUtilization is where the third, steepest curve segment
	// begins.
	EmergencyUtilization = decimal.NewFromFloat(0.95)
	// MaxAPY caps compounded output at 1000%. Inputs beyond that produce
	// no meaningful figure for display.
	MaxAPY = decimal.NewFromInt(10)

	one           = decimal.NewFromInt(1)
	emergencySpan = decimal.NewFromFloat(0.05)
	aprCeiling    = decimal.NewFromInt(100)
)

// SupplyAPR is the supplier's annualized rate: the borrow index rate times
// utilization, less the backstop's take. Negative index rates and zero
// utilization yield zero rather than an error; the validation layer is the
// designated detector for bad inputs.
func SupplyAPR(indexRate, utilization, backstopTakeRate decimal.Decimal) decimal.Decimal {
	if indexRate.Sign() < 0 || utilization.Sign() <= 0 {
		return decimal.Zero
	}
	return indexRate.Mul(utilization).Mul(one.Sub(backstopTakeRate))
}

// BorrowAPR passes the index rate through; it is already annualized in the
// protocol's convention. Negative input yields zero.
func BorrowAPR(indexRate decimal.Decimal) decimal.Decimal {
	if indexRate.Sign() < 0 {
		return decimal.Zero
	}
	return indexRate
}

// APRToAPY compounds a simple annual rate over the given number of periods:
// (1 + apr/periods)^periods - 1, capped at MaxAPY. Non-positive apr or
// periods yield zero.
func APRToAPY(apr decimal.Decimal, periods int64) decimal.Decimal {
	if apr.Sign() <= 0 || periods <= 0 {
		return decimal.Zero
	}
	// 10000% APR already compounds far past the cap; skip the exponentiation.
	if apr.GreaterThanOrEqual(aprCeiling) {
		return MaxAPY
	}

	p := decimal.NewFromInt(periods)
	apy := one.Add(apr.Div(p)).Pow(p).Sub(one)
	if apy.GreaterThan(MaxAPY) {
		return MaxAPY
	}
	return apy
}

// KinkedRate evaluates the three-segment utilization curve:
//
//	u <  target: rBase + (u/target)*rOne
//	u <  0.95:   rBase + rOne + ((u-target)/(0.95-target))*rTwo
//	u >= 0.95:   rBase + rOne + rTwo + ((u-0.95)/0.05)*rThree
//
// The segments meet exactly at both boundaries. Negative utilization yields
// zero.
func KinkedRate(utilization decimal.Decimal, cfg model.InterestRateConfig) decimal.Decimal {
	if utilization.Sign() < 0 {
		return decimal.Zero
	}

	target := cfg.TargetUtilization
	switch {
	case target.Sign() > 0 && utilization.LessThan(target):
		return cfg.RBase.Add(utilization.Div(target).Mul(cfg.ROne))
	case utilization.LessThan(EmergencyUtilization):
		span := EmergencyUtilization.Sub(target)
		if span.Sign() <= 0 {
			// Degenerate config with the kink at or past the emergency
			// threshold; validation reports it, computation stays flat.
			return cfg.RBase.Add(cfg.ROne)
		}
		excess := utilization.Sub(target)
		return cfg.RBase.Add(cfg.ROne).Add(excess.Div(span).Mul(cfg.RTwo))
	default:
		excess := utilization.Sub(EmergencyUtilization)
		return cfg.RBase.Add(cfg.ROne).Add(cfg.RTwo).Add(excess.Div(emergencySpan).Mul(cfg.RThree))
	}
}
