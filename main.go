package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/rs/zerolog"

	"mawsool-planner/config"
	"mawsool-planner/formatter"
	"mawsool-planner/metrics"
	"mawsool-planner/models"
	"mawsool-planner/session"
	"mawsool-planner/workbook"
)

func main() {
	// Define flags
	input := flag.String("input", "", "Input forecast workbook (required)")
	maxConcurrent := flag.Float64("max-concurrent", 0, "Concurrent-agent budget for the capped scenario (0 = baseline only)")
	view := flag.String("view", "", "View to print: baseline|scheduled|capacity (default follows the last action)")
	format := flag.String("format", "text", "Output format: text|json|csv")
	outDir := flag.String("out", "", "Directory for the exported plan bundle (default from config)")
	noExport := flag.Bool("no-export", false, "Skip writing the plan bundle")
	configPath := flag.String("config", "", "Config file path (default: .mawsool/config.yaml found from the working directory)")
	metricsAddr := flag.String("metrics-addr", "", "Address to expose Prometheus metrics (e.g., :9090)")
	pushGateway := flag.String("push-url", "", "Pushgateway URL to push metrics to (e.g., http://localhost:9091)")
	wait := flag.Bool("wait", false, "Keep process running after completion to allow for metric scraping")
	verbose := flag.Bool("verbose", false, "Enable debug logging")

	// Parse command-line flags
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger().Level(zerolog.InfoLevel)
	if *verbose {
		logger = logger.Level(zerolog.DebugLevel)
	}

	// Start metrics server if address provided
	if *metricsAddr != "" {
		go func() {
			http.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
			fmt.Printf("Metrics server listening on %s/metrics\n", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, nil); err != nil {
				fmt.Printf("Metrics server error: %v\n", err)
			}
		}()
	}

	// Validate required input flag
	if *input == "" {
		fmt.Println("Error: -input flag is required")
		fmt.Println("\nUsage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Validate format enum
	validFormats := map[string]bool{"text": true, "json": true, "csv": true}
	if !validFormats[*format] {
		fmt.Printf("Error: format must be one of: text, json, csv (got: %s)\n", *format)
		os.Exit(1)
	}

	// Validate view enum
	validViews := map[string]models.ViewMode{
		"baseline":  models.ViewBaseline,
		"scheduled": models.ViewScheduled,
		"capacity":  models.ViewCapacity,
	}
	if *view != "" {
		if _, ok := validViews[*view]; !ok {
			fmt.Printf("Error: view must be one of: baseline, scheduled, capacity (got: %s)\n", *view)
			os.Exit(1)
		}
	}

	// Validate budget range
	if *maxConcurrent < 0 {
		fmt.Println("Error: max-concurrent must not be negative")
		os.Exit(1)
	}

	// Load configuration
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromPath(*configPath)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	mgr := session.NewManager(cfg.StaffingFactors(), cfg.SheetNames(), logger)

	// Open input workbook
	file, err := os.Open(*input)
	if err != nil {
		fmt.Printf("Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	done, err := mgr.Upload(file)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := <-done; err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	// Generate the capped scenario when a budget was given
	if *maxConcurrent > 0 {
		sum, err := mgr.GenerateScenario(*maxConcurrent)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if sum.PeakRequired > 0 {
			fmt.Printf("Scenario: peak=%d multiplier=%.3f scheduled=%d capacity=%d understaffed=%d\n\n",
				sum.PeakRequired, sum.Multiplier, sum.ScheduledTotal, sum.CapacityTotal, sum.Understaffed)
		}
	}

	st := mgr.Snapshot()
	if *view != "" {
		st = mgr.SelectView(validViews[*view])
	}

	// Output based on format
	switch *format {
	case "json":
		fmt.Print(formatter.FormatJSON(st.Forecast, st.View))
	case "csv":
		fmt.Print(formatter.FormatCSV(st.Forecast, st.View))
	default: // "text"
		fmt.Print(formatter.FormatText(st.Forecast, st.View))
	}

	// Export the three-sheet plan bundle
	if !*noExport {
		dir := cfg.Export.Dir
		if *outDir != "" {
			dir = *outDir
		}
		name := filepath.Join(dir, workbook.BundleFileName(time.Now()))
		tables := formatter.BuildTables(st.Forecast)
		if err := workbook.WriteBundle(name, tables); err != nil {
			fmt.Printf("Error writing bundle: %v\n", err)
			os.Exit(1)
		}
		metrics.ExportSheetsWritten.Add(float64(len(tables)))
		fmt.Printf("\nPlan bundle written to %s\n", name)
	}

	// Handle metrics pushing or waiting
	if *pushGateway != "" {
		jobName := "mawsool_planner"
		if err := push.New(*pushGateway, jobName).Gatherer(metrics.Registry).Push(); err != nil {
			fmt.Fprintf(os.Stderr, "Error pushing to Pushgateway: %v\n", err)
		} else {
			fmt.Println("\nMetrics successfully pushed to Pushgateway")
		}
	}

	if *wait && *metricsAddr != "" {
		fmt.Println("\nProcess kept alive for metric scraping. Press Ctrl+C to exit.")
		// Wait for interrupt signal
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		fmt.Println("\nExiting...")
	} else if *metricsAddr != "" && *pushGateway == "" {
		// Small delay to allow final scrape if not waiting explicitly
		// but typically batch jobs should use pushgateway or wait
		time.Sleep(100 * time.Millisecond)
	}
}
