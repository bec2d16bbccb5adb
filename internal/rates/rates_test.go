package rates

import (
	"testing"

	"github.com/shopspring/decimal"

	"blendScope/internal/model"
)

var tolerance = decimal.New(1, -12)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func closeTo(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tolerance)
}

func testConfig() model.InterestRateConfig {
	return model.InterestRateConfig{
		TargetUtilization: dec("0.8"),
		RBase:             dec("0.01"),
		ROne:              dec("0.04"),
		RTwo:              dec("0.20"),
		RThree:            dec("1.00"),
		Reactivity:        dec("0.00001"),
	}
}

func TestSupplyAPR(t *testing.T) {
	got := SupplyAPR(dec("0.10"), dec("1.0"), dec("0.10"))
	if !closeTo(got, dec("0.09")) {
		t.Fatalf("supply apr mismatch: %s", got)
	}
}

func TestSupplyAPRZeroCases(t *testing.T) {
	if got := SupplyAPR(dec("-0.10"), dec("0.5"), dec("0")); !got.IsZero() {
		t.Fatalf("negative rate should yield zero, got %s", got)
	}
	if got := SupplyAPR(dec("0.10"), dec("0"), dec("0")); !got.IsZero() {
		t.Fatalf("zero utilization should yield zero, got %s", got)
	}
}

func TestBorrowAPR(t *testing.T) {
	if got := BorrowAPR(dec("0.08")); !got.Equal(dec("0.08")) {
		t.Fatalf("borrow apr mismatch: %s", got)
	}
	if got := BorrowAPR(dec("-0.01")); !got.IsZero() {
		t.Fatalf("negative rate should yield zero, got %s", got)
	}
}

func TestAPRToAPYExceedsAPR(t *testing.T) {
	apr := dec("0.10")
	apy := APRToAPY(apr, 52)
	if !apy.GreaterThan(apr) {
		t.Fatalf("apy %s should exceed apr %s", apy, apr)
	}
	// Weekly compounding of 10% lands a touch above 10.5%.
	if !apy.GreaterThan(dec("0.105")) || !apy.LessThan(dec("0.106")) {
		t.Fatalf("apy out of expected range: %s", apy)
	}
}

func TestAPRToAPYZeroCases(t *testing.T) {
	if got := APRToAPY(dec("0"), 52); !got.IsZero() {
		t.Fatalf("zero apr should yield zero, got %s", got)
	}
	if got := APRToAPY(dec("-0.5"), 52); !got.IsZero() {
		t.Fatalf("negative apr should yield zero, got %s", got)
	}
	if got := APRToAPY(dec("0.10"), 0); !got.IsZero() {
		t.Fatalf("zero periods should yield zero, got %s", got)
	}
}

func TestAPRToAPYCapped(t *testing.T) {
	if got := APRToAPY(dec("500"), 52); !got.Equal(MaxAPY) {
		t.Fatalf("extreme apr should cap at %s, got %s", MaxAPY, got)
	}
	if got := APRToAPY(dec("5"), 52); !got.Equal(MaxAPY) {
		t.Fatalf("overflowing compound should cap at %s, got %s", MaxAPY, got)
	}
}

func TestKinkedRateSegmentOne(t *testing.T) {
	got := KinkedRate(dec("0.5"), testConfig())
	if !closeTo(got, dec("0.035")) {
		t.Fatalf("segment one mismatch: %s", got)
	}
}

func TestKinkedRateSegmentTwo(t *testing.T) {
	got := KinkedRate(dec("0.9"), testConfig())
	// ((0.9-0.8)/(0.95-0.8)) * 0.20 + 0.05
	want := dec("0.05").Add(dec("0.1").Div(dec("0.15")).Mul(dec("0.20")))
	if !closeTo(got, want) {
		t.Fatalf("segment two mismatch: %s != %s", got, want)
	}

	lower := KinkedRate(dec("0.8"), testConfig())
	upper := KinkedRate(dec("0.95"), testConfig())
	if !got.GreaterThan(lower) || !got.LessThan(upper) {
		t.Fatalf("segment two value %s not between %s and %s", got, lower, upper)
	}
}

func TestKinkedRateSegmentThree(t *testing.T) {
	got := KinkedRate(dec("1.0"), testConfig())
	// 0.25 + (0.05/0.05) * 1.00
	if !closeTo(got, dec("1.25")) {
		t.Fatalf("segment three mismatch: %s", got)
	}
}

func TestKinkedRateContinuity(t *testing.T) {
	cfg := testConfig()

	// At the target, segment one's limit equals segment two's start.
	atTarget := KinkedRate(cfg.TargetUtilization, cfg)
	fromBelow := cfg.RBase.Add(cfg.TargetUtilization.Div(cfg.TargetUtilization).Mul(cfg.ROne))
	if !closeTo(atTarget, fromBelow) {
		t.Fatalf("discontinuity at target: %s != %s", atTarget, fromBelow)
	}

	// At the emergency threshold, segment two's limit equals segment
	// three's start.
	atEmergency := KinkedRate(dec("0.95"), cfg)
	fromSegTwo := cfg.RBase.Add(cfg.ROne).Add(cfg.RTwo)
	if !closeTo(atEmergency, fromSegTwo) {
		t.Fatalf("discontinuity at emergency threshold: %s != %s", atEmergency, fromSegTwo)
	}
}

func TestKinkedRateMonotonic(t *testing.T) {
	cfg := testConfig()
	step := dec("0.01")

	prev := KinkedRate(dec("0"), cfg)
	for u := dec("0.01"); u.LessThanOrEqual(dec("1.2")); u = u.Add(step) {
		cur := KinkedRate(u, cfg)
		if cur.LessThan(prev) {
			t.Fatalf("rate decreased at utilization %s: %s < %s", u, cur, prev)
		}
		prev = cur
	}
}

func TestKinkedRateNegativeUtilization(t *testing.T) {
	if got := KinkedRate(dec("-0.1"), testConfig()); !got.IsZero() {
		t.Fatalf("negative utilization should yield zero, got %s", got)
	}
}

func TestKinkedRateDegenerateTarget(t *testing.T) {
	cfg := testConfig()
	cfg.TargetUtilization = dec("0.97")

	// Utilization between 0.95 and the misplaced kink stays on the flat
	// fallback instead of dividing by a non-positive span.
	got := KinkedRate(dec("0.2"), cfg)
	if !closeTo(got, cfg.RBase.Add(dec("0.2").Div(dec("0.97")).Mul(cfg.ROne))) {
		t.Fatalf("below-target rate mismatch: %s", got)
	}
	if got := KinkedRate(dec("0.96"), cfg); got.IsZero() {
		t.Fatalf("degenerate config should still produce a rate")
	}
}

func TestValidateThreeSlopeModel(t *testing.T) {
	report := ValidateThreeSlopeModel(testConfig())
	if !report.Valid {
		t.Fatalf("expected valid config: %+v", report)
	}
	if len(report.Issues) != 0 || len(report.Warnings) != 0 {
		t.Fatalf("unexpected findings: %+v", report)
	}
}

func TestValidateThreeSlopeModelIssues(t *testing.T) {
	cfg := testConfig()
	cfg.TargetUtilization = dec("0")
	cfg.RTwo = dec("-0.1")
	cfg.Reactivity = dec("0")

	report := ValidateThreeSlopeModel(cfg)
	if report.Valid {
		t.Fatalf("expected invalid config")
	}
	if len(report.Issues) != 3 {
		t.Fatalf("expected three issues, got %+v", report.Issues)
	}

	text := report.Report()
	if text == "" || text[:23] != "three-slope model: FAIL" {
		t.Fatalf("report should lead with FAIL: %q", text)
	}
}

func TestValidateThreeSlopeModelWarning(t *testing.T) {
	cfg := testConfig()
	cfg.TargetUtilization = dec("0.95")

	report := ValidateThreeSlopeModel(cfg)
	if !report.Valid {
		t.Fatalf("high target should warn, not fail: %+v", report)
	}
	if len(report.Warnings) != 1 {
		t.Fatalf("expected one warning, got %+v", report.Warnings)
	}
}
