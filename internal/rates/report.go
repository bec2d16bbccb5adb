package rates

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"blendScope/internal/model"
)

var warnTargetUtilization = decimal.NewFromFloat(0.9)

// ModelReport is the outcome of checking a three-slope configuration. It is
// an operational diagnostic, not control flow.
type ModelReport struct {
	Valid    bool
	Issues   []string
	Warnings []string
}

// Report renders a human-readable multi-line summary.
func (r ModelReport) Report() string {
	var b strings.Builder
	if r.Valid {
		b.WriteString("three-slope model: PASS\n")
	} else {
		b.WriteString("three-slope model: FAIL\n")
	}
	for _, issue := range r.Issues {
		fmt.Fprintf(&b, "  issue: %s\n", issue)
	}
	for _, warning := range r.Warnings {
		fmt.Fprintf(&b, "  warning: %s\n", warning)
	}
	return b.String()
}

// ValidateThreeSlopeModel checks a rate configuration against the curve's
// assumptions: target utilization in (0, 1], non-negative slopes, positive
// reactivity. A target above 0.9 passes with a warning since it leaves the
// second segment little room before the emergency threshold.
func ValidateThreeSlopeModel(cfg model.InterestRateConfig) ModelReport {
	var report ModelReport

	if cfg.TargetUtilization.Sign() <= 0 || cfg.TargetUtilization.GreaterThan(decimal.NewFromInt(1)) {
		report.Issues = append(report.Issues,
			fmt.Sprintf("target_utilization %s outside (0, 1]", cfg.TargetUtilization))
	} else if cfg.TargetUtilization.GreaterThan(warnTargetUtilization) {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("target_utilization %s above 0.9", cfg.TargetUtilization))
	}

	slopes := []struct {
		name  string
		value decimal.Decimal
	}{
		{"r_base", cfg.RBase},
		{"r_one", cfg.ROne},
		{"r_two", cfg.RTwo},
		{"r_three", cfg.RThree},
	}
	for _, slope := range slopes {
		if slope.value.Sign() < 0 {
			report.Issues = append(report.Issues,
				fmt.Sprintf("%s is negative: %s", slope.name, slope.value))
		}
	}

	if cfg.Reactivity.Sign() <= 0 {
		report.Issues = append(report.Issues,
			fmt.Sprintf("reactivity must be positive, got %s", cfg.Reactivity))
	}

	report.Valid = len(report.Issues) == 0
	return report
}
