package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "ebaynet-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "ebaynet-recording",
					Rules: []Rule{
						{
							Record: "ebaynet:api_requests:rate5m",
							Expr:   `sum(rate(ebaynet_api_requests_total[5m])) by (environment)`,
						},
						{
							Record: "ebaynet:api_errors:rate5m",
							Expr:   `sum(rate(ebaynet_api_requests_total{status!~"2.."}[5m])) by (environment)`,
						},
						{
							Record: "ebaynet:token_errors:rate5m",
							Expr:   `rate(ebaynet_token_fetch_errors_total[5m])`,
						},
					},
				},
			},
		},
	}
}
