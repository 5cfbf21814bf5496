package server

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"missionlens/internal/analytics"
)

// handleDashboard renders the chart page: annual growth line, family success
// bars, application pie, and the family-to-orbit sankey.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(
		s.growthChart(),
		s.successChart(),
		s.focusChart(),
		s.orbitChart(),
	)
	if err := page.Render(w); err != nil {
		log.Printf("rendering dashboard: %v", err)
	}
}

func (s *Server) growthChart() *charts.Line {
	trend := analytics.GrowthTrend(s.data)
	years := make([]string, 0, len(trend))
	points := make([]opts.LineData, 0, len(trend))
	for _, t := range trend {
		years = append(years, strconv.Itoa(t.Year))
		points = append(points, opts.LineData{Value: t.MissionCount, Symbol: "none"})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{Title: "Annual Launch Growth"}),
	)
	line.SetXAxis(years).AddSeries("Missions", points)
	return line
}

func (s *Server) successChart() *charts.Bar {
	rates := analytics.SuccessRates(s.data)
	families := make([]string, 0, len(rates))
	values := make([]opts.BarData, 0, len(rates))
	for _, fr := range rates {
		families = append(families, fr.Family)
		values = append(values, opts.BarData{Value: fr.SuccessRate})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{Title: "Success Rate by Vehicle Family"}),
	)
	bar.SetXAxis(families).AddSeries("Success Rate", values)
	return bar
}

func (s *Server) focusChart() *charts.Pie {
	focus := analytics.StrategicFocus(s.data)
	slices := make([]opts.PieData, 0, len(focus))
	for _, f := range focus {
		slices = append(slices, opts.PieData{Name: f.Application, Value: f.Count})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Strategic Focus by Application"}),
	)
	pie.AddSeries("Applications", slices)
	return pie
}

func (s *Server) orbitChart() *charts.Sankey {
	links := analytics.OrbitComplexity(s.data)
	seen := make(map[string]bool)
	nodes := make([]opts.SankeyNode, 0)
	edges := make([]opts.SankeyLink, 0, len(links))
	for _, l := range links {
		for _, name := range []string{l.Source, l.Target} {
			if !seen[name] {
				seen[name] = true
				nodes = append(nodes, opts.SankeyNode{Name: name})
			}
		}
		edges = append(edges, opts.SankeyLink{Source: l.Source, Target: l.Target, Value: float32(l.Value)})
	}

	sankey := charts.NewSankey()
	sankey.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Mission Capabilities: Family to Orbit"}),
	)
	sankey.AddSeries("capability", nodes, edges)
	return sankey
}
