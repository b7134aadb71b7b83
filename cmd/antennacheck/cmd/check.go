package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/exa-laboratories/OpenROAD/internal/antenna/checker"
	"github.com/exa-laboratories/OpenROAD/internal/config"
	"github.com/exa-laboratories/OpenROAD/internal/pdb"
	"github.com/exa-laboratories/OpenROAD/internal/pdb/fixture"
	"github.com/exa-laboratories/OpenROAD/internal/telemetry"
	"github.com/exa-laboratories/OpenROAD/pkg/logging"
)

var checkArgs struct {
	design      string
	net         string
	margin      float64
	diodeMTerm  string
	maxDiodes   int
	reportPath  string
	metricsAddr string
	parallelism int
	verbose     bool
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run antenna checks against a design fixture",
	RunE:  runCheck,
}

func init() {
	f := checkCmd.Flags()
	f.StringVar(&checkArgs.design, "design", "", "path to a YAML design fixture (required)")
	f.StringVar(&checkArgs.net, "net", "", "check only this net; default checks every net in the design")
	f.Float64Var(&checkArgs.margin, "margin", 0, "scale every threshold by this factor before comparing (default 1.0)")
	f.StringVar(&checkArgs.diodeMTerm, "diode-mterm", "", "master terminal name of the repair diode cell")
	f.IntVar(&checkArgs.maxDiodes, "max-diodes", 0, "cap on estimated diode repair count (default 64)")
	f.StringVar(&checkArgs.reportPath, "report", "", "write the report here instead of stdout")
	f.StringVar(&checkArgs.metricsAddr, "metrics-addr", "", "bind address for the Prometheus /metrics endpoint")
	f.IntVar(&checkArgs.parallelism, "parallelism", 0, "number of nets to check concurrently")
	f.BoolVar(&checkArgs.verbose, "verbose", false, "enable debug logging")
	_ = checkCmd.MarkFlagRequired("design")
}

func runCheck(_ *cobra.Command, _ []string) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	applyFlagOverrides(&cfg)

	logLevel := cfg.LogLevel
	if checkArgs.verbose {
		logLevel = "debug"
	}
	logger := logging.New(logging.Config{Level: logLevel, Service: "antennacheck"})
	runID := uuid.New().String()
	logger.Info("starting run", "run_id", runID, "design", checkArgs.design)

	db, err := fixture.LoadFile(checkArgs.design)
	if err != nil {
		return err
	}

	var registry *prometheus.Registry
	if cfg.MetricsAddr != "" {
		registry = prometheus.NewRegistry()
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		server := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
		logger.Info("metrics server listening", "addr", cfg.MetricsAddr)
	}

	opts := checker.Options{
		Margin:        cfg.Margin,
		MaxDiodeCount: cfg.MaxDiodeCount,
		Parallelism:   cfg.Parallelism,
		Logger:        logger,
	}
	if registry != nil {
		opts.Metrics = telemetry.New(registry)
	}
	if cfg.DiodeMTermName != "" {
		if mterm := findMTerm(db, cfg.DiodeMTermName); mterm != nil {
			opts.DiodeMTerm = mterm
		} else {
			logger.Warn("diode master terminal not found in design", "mterm", cfg.DiodeMTermName)
		}
	}

	c := checker.New(db, opts)
	for _, w := range c.Warnings() {
		logger.Warn(w.String())
	}

	out := os.Stdout
	if cfg.ReportPath != "" {
		f, err := os.Create(cfg.ReportPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	ctx := context.Background()
	if checkArgs.net != "" {
		res, err := c.CheckNet(ctx, checkArgs.net)
		if err != nil {
			return err
		}
		return res.WriteReport(out)
	}

	summary, err := c.CheckAllNets(ctx)
	if err != nil {
		return err
	}
	if err := summary.WriteReport(out); err != nil {
		return err
	}
	if summary.NetsViolated > 0 {
		return fmt.Errorf("%d nets violated an antenna rule", summary.NetsViolated)
	}
	return nil
}

func applyFlagOverrides(cfg *config.Config) {
	if checkArgs.margin != 0 {
		cfg.Margin = checkArgs.margin
	}
	if checkArgs.diodeMTerm != "" {
		cfg.DiodeMTermName = checkArgs.diodeMTerm
	}
	if checkArgs.maxDiodes != 0 {
		cfg.MaxDiodeCount = checkArgs.maxDiodes
	}
	if checkArgs.reportPath != "" {
		cfg.ReportPath = checkArgs.reportPath
	}
	if checkArgs.metricsAddr != "" {
		cfg.MetricsAddr = checkArgs.metricsAddr
	}
	if checkArgs.parallelism != 0 {
		cfg.Parallelism = checkArgs.parallelism
	}
}

// findMTerm scans every pin of every net for a master terminal with
// the given name. The fixture database has no separate cell-library
// surface (spec.md §1 scope), so the repair diode's MTerm is whatever
// pin in the design already references it.
func findMTerm(db pdb.Database, name string) *pdb.MTerm {
	for _, net := range db.Nets() {
		for _, pin := range net.Pins {
			if m := pin.Term.Master(); m != nil && m.Name == name {
				return m
			}
		}
	}
	return nil
}
