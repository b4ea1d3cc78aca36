package doctor

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	appconfig "github.com/doeshing/sqai-go/internal/application/config"
	"github.com/doeshing/sqai-go/internal/domain"
	"github.com/doeshing/sqai-go/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	// Ping checks database connectivity. DatabaseErr, when set, reports why
	// no database handle could be opened at all.
	Ping        func(context.Context) error
	DatabaseErr error
	History     ports.HistoryRepository
	LookPath    func(string) (string, error)
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	if err := appconfig.Validate(cfg); err != nil {
		checks = append(checks, fail("Config file", err.Error()))
	} else {
		checks = append(checks, ok("Config file", fmt.Sprintf("loaded format %s, %d model(s)", cfg.ConfigFormatVersion, len(cfg.Models))))
	}

	checks = append(checks, s.databaseCheck(ctx, cfg.Database))
	checks = append(checks, s.backendChecks(cfg)...)
	checks = append(checks, glossaryCheck(cfg.Glossary.Path))
	checks = append(checks, s.historyCheck(ctx, cfg.History))

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) databaseCheck(ctx context.Context, db domain.DatabaseSettings) domain.HealthCheck {
	name := fmt.Sprintf("Database (%s)", db.Driver)
	if s.DatabaseErr != nil {
		return fail(name, s.DatabaseErr.Error())
	}
	if s.Ping == nil {
		return warn(name, "no connection configured")
	}
	if err := s.Ping(ctx); err != nil {
		return fail(name, err.Error())
	}
	return ok(name, "reachable")
}

func (s *Service) backendChecks(cfg domain.Config) []domain.HealthCheck {
	lookPath := s.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	var checks []domain.HealthCheck
	for _, model := range cfg.Models {
		name := "Model " + model.Name
		switch model.GetBackend() {
		case domain.BackendCommand:
			if path, err := lookPath(model.GetBinary()); err != nil {
				checks = append(checks, fail(name, fmt.Sprintf("%s not found on PATH", model.GetBinary())))
			} else {
				checks = append(checks, ok(name, fmt.Sprintf("%s run %s", path, model.GetModelID())))
			}
		case domain.BackendHTTP:
			checks = append(checks, ok(name, fmt.Sprintf("%s (%s)", model.GetEndpoint(), model.GetModelID())))
		default:
			checks = append(checks, fail(name, "unsupported backend "+model.Backend))
		}
	}
	return checks
}

func glossaryCheck(path string) domain.HealthCheck {
	info, err := os.Stat(path)
	switch {
	case err != nil:
		return warn("Glossary", fmt.Sprintf("%s missing, prompts will use a placeholder", path))
	case info.IsDir():
		return fail("Glossary", path+" is a directory")
	default:
		return ok("Glossary", path)
	}
}

func (s *Service) historyCheck(ctx context.Context, settings domain.HistorySettings) domain.HealthCheck {
	if !settings.Enabled {
		return warn("History", "disabled")
	}
	if s.History == nil {
		return warn("History", "store unavailable")
	}
	if _, err := s.History.Records(ctx, 1, ""); err != nil {
		return fail("History", err.Error())
	}
	return ok("History", s.History.Path())
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
