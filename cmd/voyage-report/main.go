// Command voyage-report exports the multi-voyage fuel report of a vessel
// without the console, once or on a cron schedule.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ngmaloney/vessel-console/internal/api"
	"github.com/ngmaloney/vessel-console/internal/config"
	"github.com/ngmaloney/vessel-console/internal/database"
	"github.com/ngmaloney/vessel-console/internal/logging"
	"github.com/ngmaloney/vessel-console/internal/models"
	"github.com/ngmaloney/vessel-console/internal/report"
	"github.com/ngmaloney/vessel-console/internal/session"
	"github.com/ngmaloney/vessel-console/internal/voyage"
)

const userAgent = "VesselConsole-Report/1.0 (github.com/ngmaloney/vessel-console)"

type options struct {
	configPath string
	vessel     string
	month      int
	year       int
	kpi        float64
	outDir     string
	output     string
	formats    string
	schedule   string
}

func main() {
	var o options
	flag.StringVar(&o.configPath, "config", "", "Path to a YAML config file")
	flag.StringVar(&o.vessel, "vessel", "", "Vessel id or name (required)")
	flag.IntVar(&o.month, "month", 0, "Posting month (default: previous month)")
	flag.IntVar(&o.year, "year", 0, "Posting year (default: year of the previous month)")
	flag.Float64Var(&o.kpi, "kpi", 0, "Reference consumption per voyage in liters (overrides report.kpi)")
	flag.StringVar(&o.outDir, "out", "", "Output directory (overrides report.out_dir)")
	flag.StringVar(&o.output, "o", "", "Write one file to this path; the format follows the extension")
	flag.StringVar(&o.formats, "format", "xlsx", "Comma separated export formats: xlsx, pdf, csv, json, yaml")
	flag.StringVar(&o.schedule, "schedule", "", "Cron expression; run until interrupted (overrides report.schedule)")
	flag.Parse()

	if err := run(o); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(o options) error {
	if o.vessel == "" {
		return errors.New("--vessel is required")
	}
	formats, err := parseFormats(o.formats)
	if err != nil {
		return err
	}
	if o.output != "" {
		f, err := report.FormatFromPath(o.output)
		if err != nil {
			return err
		}
		formats = []report.Format{f}
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.kpi > 0 {
		cfg.Report.KPI = o.kpi
	}
	if o.outDir != "" {
		cfg.Report.OutDir = o.outDir
	}
	if o.schedule != "" {
		cfg.Report.Schedule = o.schedule
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := logging.Setup(cfg.Log.Level, os.Stderr); err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, closeDB, err := signIn(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	client := api.NewClient(cfg.API.BaseURL,
		api.WithUserAgent(userAgent),
		api.WithTimeout(cfg.API.Timeout),
		api.WithMaxRetries(cfg.API.MaxRetries),
		api.WithRetryDelay(cfg.API.RetryDelay),
		api.WithTokenSource(sess),
	)
	if sess.User() == nil {
		if _, err := client.Me(ctx); err != nil {
			return fmt.Errorf("stored session rejected: %w", err)
		}
	}

	e := &exporter{
		vessels: client,
		voyages: voyage.NewService(client),
		builder: report.NewBuilder(client, cfg.Report.Concurrency),
		vessel:  o.vessel,
		kpi:     cfg.Report.KPI,
		outDir:  cfg.Report.OutDir,
		output:  o.output,
		formats: formats,
	}

	if cfg.Report.Schedule == "" {
		month, year := o.month, o.year
		if month == 0 {
			month, year = report.PreviousPeriod(time.Now().In(loc))
		} else if year == 0 {
			year = time.Now().In(loc).Year()
		}
		return e.export(ctx, month, year)
	}

	scheduler := report.NewScheduler(ctx)
	id, err := scheduler.Add(cfg.Report.Schedule, e.export)
	if err != nil {
		return err
	}
	scheduler.Start()
	log.WithField("next", scheduler.Next(id).Format(time.RFC3339)).Info("Report schedule started")

	<-ctx.Done()
	log.Info("Stopping report schedule")
	<-scheduler.Stop().Done()
	return nil
}

// signIn uses the configured credentials, or else the session stored by the
// console. The returned func closes the session store.
func signIn(ctx context.Context, cfg *config.Config) (*session.Session, func(), error) {
	if cfg.Auth.Email != "" {
		sess := session.New(nil)
		auth := api.NewClient(cfg.API.BaseURL, api.WithUserAgent(userAgent), api.WithTimeout(cfg.API.Timeout), api.WithTokenSource(sess))
		if _, err := sess.Login(ctx, auth, cfg.Auth.Email, cfg.Auth.Password); err != nil {
			return nil, nil, fmt.Errorf("failed to sign in as %s: %w", cfg.Auth.Email, err)
		}
		return sess, func() {}, nil
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}
	sess := session.New(session.NewStore(db))
	if err := sess.Init(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	if !sess.Authenticated() {
		db.Close()
		return nil, nil, errors.New("not signed in: set auth.email and auth.password or sign in with vessel-console")
	}
	return sess, func() { db.Close() }, nil
}

func parseFormats(s string) ([]report.Format, error) {
	var formats []report.Format
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		f, err := report.ParseFormat(part)
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	if len(formats) == 0 {
		return nil, errors.New("--format needs at least one format")
	}
	return formats, nil
}

type vesselLister interface {
	ListVessels(ctx context.Context) ([]models.Vessel, error)
}

type exporter struct {
	vessels vesselLister
	voyages *voyage.Service
	builder *report.Builder
	vessel  string
	kpi     float64
	outDir  string
	output  string
	formats []report.Format
}

// export builds the report of one posting period and writes every format
func (e *exporter) export(ctx context.Context, month, year int) error {
	logger := logging.Entry(ctx).WithField("period", fmt.Sprintf("%d/%d", month, year))

	vessels, err := e.vessels.ListVessels(ctx)
	if err != nil {
		return err
	}
	vessel, err := findVessel(vessels, e.vessel)
	if err != nil {
		return err
	}

	voyages, err := e.voyages.List(ctx, vessel, models.VoyageFilter{Year: year, Month: month})
	if err != nil {
		return err
	}
	r, err := e.builder.Build(ctx, report.Request{Vessel: vessel, Month: month, Year: year, Voyages: voyages, KPI: e.kpi})
	if err != nil {
		return err
	}

	for _, f := range e.formats {
		path := e.output
		if path == "" {
			path = filepath.Join(e.outDir, r.FileName(f))
		}
		if err := report.ExportFile(path, f, r); err != nil {
			return err
		}
		logger.WithField("file", path).Info("Report written")
		fmt.Println(path)
	}
	return nil
}

// findVessel matches an id first, then a case-insensitive name
func findVessel(vessels []models.Vessel, ref string) (models.Vessel, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		for _, v := range vessels {
			if v.ID == id {
				return v, nil
			}
		}
	}
	for _, v := range vessels {
		if strings.EqualFold(v.Name, ref) {
			return v, nil
		}
	}
	return models.Vessel{}, fmt.Errorf("vessel %q not found", ref)
}
