package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/resumeanalyzer/internal/client/client"
	"github.com/dmitrijs2005/resumeanalyzer/internal/client/config"
	"github.com/dmitrijs2005/resumeanalyzer/internal/client/services"
	"github.com/dmitrijs2005/resumeanalyzer/internal/client/workflow"
	"github.com/dmitrijs2005/resumeanalyzer/internal/filex"
	"github.com/dmitrijs2005/resumeanalyzer/internal/logging"
)

// runtime holds the wired client stack shared by every command.
type runtime struct {
	cfg      *config.Config
	log      logging.Logger
	db       *sql.DB
	auth     services.AuthService
	analyses services.AnalysisService
}

func newRuntime(ctx context.Context, cfg *config.Config, log logging.Logger) (*runtime, error) {
	dir, err := filex.EnsureDir(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	cfg.DataDir = dir

	db, err := client.InitDatabase(ctx, cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("open local database: %w", err)
	}

	api, err := client.NewHTTPClient(cfg.APIURL)
	if err != nil {
		db.Close()
		return nil, err
	}

	log.Debug(ctx, "client ready", "api", cfg.APIURL, "db", cfg.DatabasePath())
	return &runtime{
		cfg:      cfg,
		log:      log,
		db:       db,
		auth:     services.NewAuthService(api, services.NewTokenStore(db)),
		analyses: services.NewAnalysisService(api),
	}, nil
}

// Workflow builds the orchestrator front ends drive.
func (r *runtime) Workflow() *workflow.App {
	return workflow.New(r.auth, r.analyses, workflow.Options{
		NotifyTimeout: r.cfg.NotifyTimeout,
		Logger:        r.log,
	})
}

func (r *runtime) Close(ctx context.Context) error {
	return errors.Join(r.auth.Close(ctx), r.db.Close())
}
