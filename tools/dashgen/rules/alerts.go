package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// eBay API clients built on ebaynet.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "ebaynet-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "ebaynet-alerts",
					Rules: []Rule{
						{
							Alert: "EbaynetHighErrorRate",
							Expr:  `ebaynet:api_errors:rate5m / ebaynet:api_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High eBay API error rate",
								"description": "More than 5% of eBay API requests in {{ $labels.environment }} failed over the last 5 minutes.",
							},
						},
						{
							Alert: "EbaynetSlowRequests",
							Expr:  `histogram_quantile(0.95, sum(rate(ebaynet_api_request_duration_seconds_bucket[5m])) by (le, environment)) > 5`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "eBay API latency is elevated",
								"description": "p95 eBay API latency in {{ $labels.environment }} has been above 5s for 10 minutes.",
							},
						},
						{
							Alert: "EbaynetTokenFetchFailures",
							Expr:  `ebaynet:token_errors:rate5m > 0`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "OAuth token requests are failing",
								"description": "Client-credentials token requests have been failing for more than 5 minutes. Check app id and cert id.",
							},
						},
					},
				},
			},
		},
	}
}
