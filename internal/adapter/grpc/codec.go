package grpc

import (
	"time"

	"github.com/simaogato/wealthflow-costbasis/internal/domain"
	"github.com/simaogato/wealthflow-costbasis/internal/usecase/dashboard"
	"github.com/simaogato/wealthflow-costbasis/internal/usecase/metrics"
)

// encodeView flattens a view into structpb-compatible values.
// Amounts are decimal strings and timestamps RFC 3339.
func encodeView(view *dashboard.View) map[string]interface{} {
	excluded := make(map[string]interface{}, len(view.Excluded))
	for asset, err := range view.Excluded {
		excluded[asset] = err.Error()
	}

	return map[string]interface{}{
		"account_id":   view.Account,
		"asset":        view.Selection,
		"invested":     encodeSeries(view.Invested),
		"invested_raw": encodeSeries(view.Raw),
		"basis":        encodeSeries(view.Basis),
		"samples":      encodeSamples(view.Samples),
		"underwater":   view.Underwater,
		"excluded":     excluded,
	}
}

func encodeSeries(s domain.Series) []interface{} {
	out := make([]interface{}, 0, len(s))
	for _, p := range s {
		out = append(out, map[string]interface{}{
			"time":  formatTime(p.Time),
			"value": p.Value.String(),
		})
	}
	return out
}

func encodeSamples(samples []metrics.Sample) []interface{} {
	out := make([]interface{}, 0, len(samples))
	for _, s := range samples {
		var percent interface{} // null when undefined
		if s.Percent.Valid {
			percent = s.Percent.Decimal.StringFixed(2)
		}
		out = append(out, map[string]interface{}{
			"time":              formatTime(s.Time),
			"value":             s.Value.String(),
			"invested":          s.Invested.String(),
			"dollar_gain_loss":  s.Dollar.String(),
			"percent_gain_loss": percent,
		})
	}
	return out
}

func stringList(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
