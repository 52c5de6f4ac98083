// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/ebaynet/tools/dashgen/panels"
)

// BuildOverview constructs the ebaynet overview dashboard.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("ebaynet Overview").
		Uid("ebaynet-overview").
		Tags([]string{"ebaynet", "ebay"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Browse API traffic.
	b.WithRow(dashboard.NewRowBuilder("eBay API").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.ErrorRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.StatusBreakdown()))

	// Row 2: OAuth.
	b.WithRow(dashboard.NewRowBuilder("OAuth").
		WithPanel(panels.TokenFetchErrors()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
