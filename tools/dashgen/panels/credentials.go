package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// CacheTraffic returns a timeseries panel showing credential cache hits and
// misses per second.
func CacheTraffic() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Cache Traffic").
		Description("Credential cache hits and misses per second").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`spproxy:credential_cache_hits:rate5m`, "hits/s", "A")).
		WithTarget(PromQuery(`spproxy:credential_cache_misses:rate5m`, "misses/s", "B")).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// CredentialCreates returns a timeseries panel showing first-time credential
// creations per minute.
func CredentialCreates() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Creates / min").
		Description("Rate of first-time credential records created per minute").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`rate(spproxy_credential_creates_total{job="sp-proxy"}[5m]) * 60`,
			"creates/min", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// CredentialRefreshes returns a timeseries panel showing credential refreshes
// per minute.
func CredentialRefreshes() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Refreshes / min").
		Description("Rate of credential refreshes performed per minute").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`rate(spproxy_credential_refreshes_total{job="sp-proxy"}[5m]) * 60`,
			"refreshes/min", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
