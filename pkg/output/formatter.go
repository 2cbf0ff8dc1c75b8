package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/trafficlab/route-planner/pkg/model"
	"github.com/trafficlab/route-planner/pkg/roadnet"
	"github.com/trafficlab/route-planner/pkg/route"
)

// PrintRouteReport prints a formatted route report with colors.
func PrintRouteReport(g model.Graph, source, destination string, res route.Result, elapsed time.Duration) {
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	bold.Println("Route Planner - Fastest Route")
	bold.Println("=============================")
	fmt.Printf("From: %s\n", source)
	fmt.Printf("To:   %s\n", destination)
	fmt.Println()

	if !res.Found {
		red.Printf("No route exists between %s and %s.\n", source, destination)
		return
	}

	green.Printf("Route: %s\n", strings.Join(res.Path, " → "))
	fmt.Println()

	// Per-segment breakdown
	if len(res.Path) > 1 {
		cyan.Println("SEGMENTS:")
		for _, seg := range route.PathEdges(res.Path) {
			w, _ := g.Weight(seg[0], seg[1])
			yellow.Printf("  %s → %s", seg[0], seg[1])
			fmt.Printf("  (%.1f min)\n", w)
		}
		fmt.Println()
	}

	stops := len(res.Path) - 1
	bold.Printf("Total travel time: %.1f min over %d stop(s)\n", res.TotalWeight, stops)
	if stops > 0 {
		fmt.Printf("Average segment:   %.1f min\n", res.TotalWeight/float64(stops))
	}
	fmt.Printf("Computed in:       %s\n", elapsed)
}

// PrintNetworkSummary prints network-level stats for the dashboard.
func PrintNetworkSummary(g model.Graph) {
	bold := color.New(color.Bold)
	stats := roadnet.Summarize(g)

	bold.Println("Network")
	fmt.Printf("  Locations:       %d\n", stats.Locations)
	fmt.Printf("  Routes:          %d\n", stats.Routes)
	fmt.Printf("  Avg travel time: %.1f min\n", stats.AverageWeight)
}
