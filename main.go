package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"MindCanvas/internal/analysis"
	"MindCanvas/internal/export"
	mcnet "MindCanvas/internal/net"
	"MindCanvas/internal/state"
	"MindCanvas/internal/ui"
)

const discoverTimeout = 2 * time.Second

func main() {
	serverAddr := flag.String("server", "", "insight service address (host:port); discovered via mDNS when empty")
	reportPath := flag.String("report", "mindcanvas-report.pdf", "where to write the PDF report")
	discover := flag.Bool("discover", true, "look for an insight service on the local network")
	flag.Parse()

	if *serverAddr == "" && *discover {
		addr, err := mcnet.Discover(discoverTimeout)
		if err != nil {
			log.Printf("[MAIN] no insight service on the network, analyzing locally: %v", err)
		} else {
			log.Printf("[MAIN] discovered insight service at %s", addr)
			*serverAddr = addr
		}
	}

	session := state.NewSession()

	// Stream live metrics to the service while drawing, if one is reachable.
	if *serverAddr != "" {
		streamer := mcnet.NewMetricsStreamer(*serverAddr, session, time.Second)
		if err := streamer.Start(); err != nil {
			log.Printf("[MAIN] live metrics streaming unavailable: %v", err)
		} else {
			defer streamer.Stop()
		}
	}

	onComplete := func(snaps []state.PhaseSnapshot) (string, error) {
		payload := analysis.FromSnapshots(snaps)

		var report *analysis.Report
		if *serverAddr != "" {
			remote, err := mcnet.Analyze(*serverAddr, payload)
			if err != nil {
				log.Printf("[MAIN] remote analysis failed, falling back to local: %v", err)
			} else {
				report = remote
			}
		}
		if report == nil {
			local, err := analysis.BuildReport(payload)
			if err != nil {
				return "", fmt.Errorf("build report: %w", err)
			}
			report = local
		}

		if err := export.WriteReport(*reportPath, snaps, report); err != nil {
			log.Printf("[MAIN] PDF export failed: %v", err)
		} else {
			log.Printf("[MAIN] report written to %s", *reportPath)
		}
		return summaryText(report), nil
	}

	ui.RunApp(session, onComplete)
}

func summaryText(rep *analysis.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Personality type: %s\n%s\n\n", rep.Cluster.Type, rep.Cluster.Description)
	for _, in := range rep.Insights {
		fmt.Fprintf(&b, "%s (%s):\n%s\n\n", in.Name, in.Domain, in.Text)
	}
	b.WriteString(rep.Assessment)
	return b.String()
}
