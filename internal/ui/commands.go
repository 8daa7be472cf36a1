package ui

import (
	"context"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/ngmaloney/vessel-console/internal/dashboard"
	"github.com/ngmaloney/vessel-console/internal/logging"
	"github.com/ngmaloney/vessel-console/internal/models"
	"github.com/ngmaloney/vessel-console/internal/report"
	"github.com/ngmaloney/vessel-console/internal/session"
	"github.com/ngmaloney/vessel-console/internal/voyage"
)

const (
	requestTimeout = 30 * time.Second
	// the dashboard walks every voyage of the fleet one request at a time
	summaryTimeout = 2 * time.Minute
)

// signIn logs in and loads the profile in the background
func signIn(gen int, s *session.Session, auth session.Authenticator, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		user, err := s.Login(ctx, auth, email, password)
		return loginMsg{gen: gen, user: user, err: err}
	}
}

// signOut clears the stored session
func signOut(s *session.Session) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := s.Teardown(ctx); err != nil {
			log.WithError(err).Warn("Failed to clear stored session")
		}
		return nil
	}
}

// fetchVessels loads the vessels offered by the filters
func fetchVessels(gen int, lister VesselLister) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		ctx, _ = logging.NewCycle(ctx)

		vessels, err := lister.ListVessels(ctx)
		return vesselsMsg{gen: gen, vessels: vessels, err: err}
	}
}

// fetchSummary computes the dashboard for a filter
func fetchSummary(gen int, agg *dashboard.Aggregator, f dashboard.Filter) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), summaryTimeout)
		defer cancel()
		ctx, _ = logging.NewCycle(ctx)

		summary, err := agg.Summarize(ctx, f)
		return summaryMsg{gen: gen, summary: summary, err: err}
	}
}

// fetchVoyages lists a vessel's voyages newest first
func fetchVoyages(gen int, svc *voyage.Service, vessel models.Vessel, filter models.VoyageFilter) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		ctx, _ = logging.NewCycle(ctx)

		voyages, err := svc.List(ctx, vessel, filter)
		if err == nil {
			dashboard.SortByStartDesc(voyages)
		}
		return voyagesMsg{gen: gen, voyages: voyages, err: err}
	}
}

// fetchDetail loads a voyage with its activities and fuel record
func fetchDetail(gen int, svc *voyage.Service, voyageID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		d, err := svc.Load(ctx, voyageID)
		return detailMsg{gen: gen, detail: d, err: err}
	}
}

// saveDetail runs an edit of the voyage detail; the service reloads the
// voyage afterwards
func saveDetail(gen int, run func(context.Context) (*voyage.Detail, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		d, err := run(ctx)
		return detailMsg{gen: gen, detail: d, err: err}
	}
}

// changeVoyage runs a voyage mutation from the voyage list
func changeVoyage(gen int, notice string, run func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := run(ctx); err != nil {
			return voyageChangedMsg{gen: gen, err: err}
		}
		return voyageChangedMsg{gen: gen, notice: notice}
	}
}

// buildReport fetches every listed voyage's activities with bounded
// concurrency and aggregates them
func buildReport(gen int, b *report.Builder, req report.Request) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), summaryTimeout)
		defer cancel()
		ctx, _ = logging.NewCycle(ctx)

		r, err := b.Build(ctx, req)
		return reportMsg{gen: gen, report: r, err: err}
	}
}

// exportReport writes the report into dir
func exportReport(gen int, r *report.Report, dir string, format report.Format) tea.Cmd {
	return func() tea.Msg {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return exportMsg{gen: gen, err: err}
		}
		path := filepath.Join(dir, r.FileName(format))
		if err := report.ExportFile(path, format, r); err != nil {
			return exportMsg{gen: gen, err: err}
		}
		return exportMsg{gen: gen, path: path}
	}
}
