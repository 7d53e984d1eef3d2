package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mfigueredo/amazon-sp-proxy/tools/dashgen/dashboards"
	"github.com/mfigueredo/amazon-sp-proxy/tools/dashgen/rules"
	"github.com/mfigueredo/amazon-sp-proxy/tools/dashgen/validate"
)

func TestDefaultConfigValid(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate_EmptyOutputDir(t *testing.T) {
	t.Parallel()
	cfg := Config{OutputDir: "", DashboardEnabled: true}
	assert.Error(t, cfg.Validate())
}

func TestConfigValidate_NothingEnabled(t *testing.T) {
	t.Parallel()
	cfg := Config{OutputDir: "/tmp", DashboardEnabled: false, RulesEnabled: false}
	assert.Error(t, cfg.Validate())
}

func TestBuildOverviewDashboard(t *testing.T) {
	t.Parallel()

	builder := dashboards.BuildOverview()
	dash, err := builder.Build()
	require.NoError(t, err)

	// Verify dashboard metadata.
	require.NotNil(t, dash.Uid)
	assert.Equal(t, "spproxy-overview", *dash.Uid)

	require.NotNil(t, dash.Title)
	assert.Equal(t, "SP Proxy Overview", *dash.Title)

	// Verify template variable.
	require.NotNil(t, dash.Templating)
	assert.Len(t, dash.Templating.List, 1)
	assert.Equal(t, "datasource", dash.Templating.List[0].Name)

	// Verify we have 4 rows.
	assert.Len(t, dash.Panels, 4)

	// Count total inner panels.
	totalPanels := 0
	for _, p := range dash.Panels {
		if p.RowPanel != nil {
			totalPanels += len(p.RowPanel.Panels)
		}
	}
	assert.Equal(t, 13, totalPanels)

	// Validate PromQL and metrics.
	result := validate.Dashboard(dash, KnownMetrics)
	assert.True(t, result.Ok(), "validation errors: %v", result.Errors)
	assert.Empty(t, result.Warnings, "unexpected warnings: %v", result.Warnings)
}

func TestRecordingRules(t *testing.T) {
	t.Parallel()

	cr := rules.RecordingRules()
	assert.Equal(t, "monitoring.coreos.com/v1", cr.APIVersion)
	assert.Equal(t, "PrometheusRule", cr.Kind)
	assert.Equal(t, "spproxy-recording-rules", cr.Metadata.Name)

	require.Len(t, cr.Spec.Groups, 1)
	group := cr.Spec.Groups[0]
	assert.Equal(t, "spproxy-recording", group.Name)
	require.Len(t, group.Rules, 6)

	expectedRecords := []string{
		"spproxy:http_requests:rate5m",
		"spproxy:http_errors:rate5m",
		"spproxy:credential_cache_hits:rate5m",
		"spproxy:credential_cache_misses:rate5m",
		"spproxy:token_exchange_errors:rate5m",
		"spproxy:amazon_api_calls:rate5m",
	}
	for i, rule := range group.Rules {
		assert.Equal(t, expectedRecords[i], rule.Record)
		assert.NotEmpty(t, rule.Expr)

		res := validate.Expr(rule.Expr, KnownMetrics)
		assert.True(t, res.Ok(), "rule %s: %v", rule.Record, res.Errors)
	}

	// Verify YAML marshaling works.
	data, err := yaml.Marshal(cr)
	require.NoError(t, err)
	assert.Contains(t, string(data), "apiVersion: monitoring.coreos.com/v1")
}

func TestAlertRules(t *testing.T) {
	t.Parallel()

	cr := rules.AlertRules()
	assert.Equal(t, "monitoring.coreos.com/v1", cr.APIVersion)
	assert.Equal(t, "PrometheusRule", cr.Kind)
	assert.Equal(t, "spproxy-alerts", cr.Metadata.Name)

	require.Len(t, cr.Spec.Groups, 1)
	group := cr.Spec.Groups[0]
	assert.Equal(t, "spproxy-alerts", group.Name)
	require.Len(t, group.Rules, 6)

	expectedAlerts := []string{
		"SpProxyDown",
		"SpProxyReadinessDown",
		"SpProxyHighErrorRate",
		"SpProxyTokenExchangeErrors",
		"SpProxyLowCacheHitRatio",
		"SpProxyAmazonLatencyHigh",
	}
	for i, rule := range group.Rules {
		assert.Equal(t, expectedAlerts[i], rule.Alert)
		assert.NotEmpty(t, rule.Expr)
		assert.NotEmpty(t, rule.Labels["severity"], "alert %s missing severity", rule.Alert)
		assert.NotEmpty(t, rule.Annotations["summary"], "alert %s missing summary", rule.Alert)
		assert.NotEmpty(t, rule.Annotations["description"], "alert %s missing description", rule.Alert)

		res := validate.Expr(rule.Expr, KnownMetrics)
		assert.True(t, res.Ok(), "alert %s: %v", rule.Alert, res.Errors)
	}
}

func TestRun_ValidateOnly(t *testing.T) {
	t.Parallel()

	cfg := Config{OutputDir: t.TempDir(), DashboardEnabled: true, RulesEnabled: true}
	require.NoError(t, run(cfg, true))

	// Validation alone must not write anything.
	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_WritesArtifacts(t *testing.T) {
	t.Parallel()

	cfg := Config{OutputDir: t.TempDir(), DashboardEnabled: true, RulesEnabled: true}
	require.NoError(t, run(cfg, false))

	dashPath := filepath.Join(cfg.OutputDir, "grafana", "data", "spproxy-overview.json")
	dashJSON, err := os.ReadFile(dashPath)
	require.NoError(t, err)
	assert.True(t, json.Valid(dashJSON), "dashboard output is not valid JSON")
	assert.Contains(t, string(dashJSON), "spproxy-overview")

	for _, name := range []string{"spproxy-recording-rules.yaml", "spproxy-alerts.yaml"} {
		data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "prometheus", name))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), generatedHeader), "%s missing generated header", name)

		var cr rules.PrometheusRule
		require.NoError(t, yaml.Unmarshal(data, &cr))
		assert.Equal(t, "PrometheusRule", cr.Kind)
	}
}
