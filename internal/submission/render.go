// internal/submission/render.go
package submission

import (
	"math"
	"strconv"
	"strings"

	"churn-console/internal/prediction"

	"github.com/shopspring/decimal"
)

type tierStyle struct {
	label       string
	badgeClass  string
	cardClass   string
	meterColor  string
	explanation string
}

var tierStyles = map[Tier]tierStyle{
	TierHigh: {
		label:       "HIGH RISK",
		badgeClass:  "badge-high",
		cardClass:   "high",
		meterColor:  "var(--danger)",
		explanation: "This customer shows patterns strongly associated with cancellation. Immediate action (e.g., offering a discount or contract upgrade) is recommended.",
	},
	TierMedium: {
		label:       "MEDIUM RISK",
		badgeClass:  "badge-medium",
		cardClass:   "medium",
		meterColor:  "var(--warning)",
		explanation: "There are some warning signs. A proactive check-in or customer service call might help improve loyalty.",
	},
	TierLow: {
		label:       "LOW RISK",
		badgeClass:  "badge-low",
		cardClass:   "low",
		meterColor:  "var(--success)",
		explanation: "This customer appears stable and satisfied based on their profile. No immediate churn risk detected.",
	},
}

// TierFor maps a risk category token to a tier. Matching is exact; unknown tokens are LOW.
func TierFor(category string) Tier {
	switch Tier(category) {
	case TierHigh:
		return TierHigh
	case TierMedium:
		return TierMedium
	default:
		return TierLow
	}
}

// Render builds the view for a prediction result.
func Render(result *prediction.Result) RiskView {
	tier := TierFor(result.RiskCategory)
	style := tierStyles[tier]
	percent := FormatPercent(result.ChurnProbability)

	return RiskView{
		Tier:            tier,
		ProbabilityText: percent,
		MeterWidth:      percent,
		MeterColor:      style.meterColor,
		Label:           style.label,
		BadgeClass:      style.badgeClass,
		CardClass:       style.cardClass,
		Explanation:     style.explanation,
	}
}

// FormatPercent renders probability*100 with one decimal and a "%" suffix. Rounding works on the
// exact binary value with ties away from zero. The value is not clamped.
func FormatPercent(probability float64) string {
	return toFixed1(probability*100) + "%"
}

func toFixed1(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	case math.Abs(x) >= 1e21:
		return strconv.FormatFloat(x, 'g', -1, 64)
	}

	exact := decimal.RequireFromString(strconv.FormatFloat(x, 'f', 40, 64))
	fixed := exact.StringFixed(1)
	if x < 0 && !strings.HasPrefix(fixed, "-") {
		fixed = "-" + fixed
	}
	return fixed
}

// apply writes the view to the result panel.
func apply(view RiskView, panel ResultPanel) {
	panel.Reveal()
	panel.SetProbability(view.ProbabilityText, view.MeterWidth)
	panel.ResetTier()
	panel.ApplyTier(view)
	panel.ScrollIntoView(ScrollSmooth, ScrollNear)
}
