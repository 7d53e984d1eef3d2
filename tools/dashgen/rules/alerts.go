package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// amazon-sp-proxy operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "spproxy-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "spproxy-alerts",
					Rules: []Rule{
						{
							Alert: "SpProxyDown",
							Expr:  `absent(up{job="sp-proxy"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "SP proxy is down",
								"description": "The sp-proxy job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "SpProxyReadinessDown",
							Expr:  `spproxy_readyz_up == 0`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "SP proxy readiness check is failing",
								"description": "The readiness probe has been reporting not-ready for more than 2 minutes.",
							},
						},
						{
							Alert: "SpProxyHighErrorRate",
							Expr:  `spproxy:http_errors:rate5m / spproxy:http_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on SP proxy",
								"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert: "SpProxyTokenExchangeErrors",
							Expr:  `spproxy:token_exchange_errors:rate5m > 0`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "OAuth token exchange failures detected",
								"description": "Token exchanges against Amazon have been failing for more than 5 minutes.",
							},
						},
						{
							Alert: "SpProxyLowCacheHitRatio",
							Expr:  `spproxy:credential_cache_hits:rate5m / (spproxy:credential_cache_hits:rate5m + spproxy:credential_cache_misses:rate5m) < 0.5`,
							For:   "15m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Credential cache hit ratio is low",
								"description": "Less than half of credential lookups are served from cache, increasing store and token endpoint load.",
							},
						},
						{
							Alert: "SpProxyAmazonLatencyHigh",
							Expr:  `histogram_quantile(0.95, sum(rate(spproxy_amazon_api_duration_seconds_bucket[5m])) by (le)) > 5`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Selling Partner API latency is elevated",
								"description": "The p95 Selling Partner API call duration has been above 5 seconds for 10 minutes.",
							},
						},
					},
				},
			},
		},
	}
}
