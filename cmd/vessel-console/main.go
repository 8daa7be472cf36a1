package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/ngmaloney/vessel-console/internal/api"
	"github.com/ngmaloney/vessel-console/internal/config"
	"github.com/ngmaloney/vessel-console/internal/dashboard"
	"github.com/ngmaloney/vessel-console/internal/database"
	"github.com/ngmaloney/vessel-console/internal/logging"
	"github.com/ngmaloney/vessel-console/internal/report"
	"github.com/ngmaloney/vessel-console/internal/session"
	"github.com/ngmaloney/vessel-console/internal/ui"
	"github.com/ngmaloney/vessel-console/internal/voyage"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	baseURL := flag.String("api", "", "Fleet API base URL (overrides api.base_url)")
	signOut := flag.Bool("signout", false, "Forget the stored session before starting")
	flag.Parse()

	if err := run(*configPath, *baseURL, *signOut); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, baseURL string, signOut bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// The terminal belongs to the UI
	logFile, err := logging.OpenFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer logFile.Close()
	if err := logging.Setup(cfg.Log.Level, logFile); err != nil {
		return err
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	sess := session.New(session.NewStore(db))
	if signOut {
		if err := sess.Teardown(ctx); err != nil {
			return fmt.Errorf("failed to clear stored session: %w", err)
		}
	} else if err := sess.Init(ctx); err != nil {
		log.WithError(err).Warn("Stored session not restored")
	}

	opts := []api.Option{
		api.WithTimeout(cfg.API.Timeout),
		api.WithMaxRetries(cfg.API.MaxRetries),
		api.WithRetryDelay(cfg.API.RetryDelay),
		api.WithTokenSource(sess),
	}
	if cfg.CacheEnabled() {
		cache, err := api.NewRedisCache(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		if err != nil {
			log.WithError(err).Warn("Vessel cache disabled")
		} else {
			defer cache.Close()
			opts = append(opts, api.WithCache(cache, cfg.Cache.TTL))
		}
	}
	client := api.NewClient(cfg.API.BaseURL, opts...)
	log.WithField("api", client.BaseURL()).Info("Console started")

	m := ui.NewModel(ui.Deps{
		Session:   sess,
		Auth:      client,
		Vessels:   client,
		Dashboard: dashboard.NewAggregator(client, loc),
		Voyages:   voyage.NewService(client),
		Reports:   report.NewBuilder(client, cfg.Report.Concurrency),
		Fleet:     client,
		KPI:       cfg.Report.KPI,
		ExportDir: cfg.Report.OutDir,
		Location:  loc,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running application: %w", err)
	}
	return nil
}
