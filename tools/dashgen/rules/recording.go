package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "spproxy-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "spproxy-recording",
					Rules: []Rule{
						{
							Record: "spproxy:http_requests:rate5m",
							Expr:   `sum(rate(spproxy_http_requests_total[5m]))`,
						},
						{
							Record: "spproxy:http_errors:rate5m",
							Expr:   `sum(rate(spproxy_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "spproxy:credential_cache_hits:rate5m",
							Expr:   `rate(spproxy_credential_cache_hits_total[5m])`,
						},
						{
							Record: "spproxy:credential_cache_misses:rate5m",
							Expr:   `rate(spproxy_credential_cache_misses_total[5m])`,
						},
						{
							Record: "spproxy:token_exchange_errors:rate5m",
							Expr:   `sum(rate(spproxy_token_exchanges_total{result="error"}[5m]))`,
						},
						{
							Record: "spproxy:amazon_api_calls:rate5m",
							Expr:   `sum(rate(spproxy_amazon_api_calls_total[5m]))`,
						},
					},
				},
			},
		},
	}
}
