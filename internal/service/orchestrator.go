package service

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gnomegl/gitoverlap/internal/config"
	"github.com/gnomegl/gitoverlap/internal/display"
	"github.com/gnomegl/gitoverlap/internal/export"
	"github.com/gnomegl/gitoverlap/internal/github"
	"github.com/gnomegl/gitoverlap/internal/overlap"
	"github.com/gnomegl/gitoverlap/internal/spider"
	"go.uber.org/zap"
)

const creator = "gitoverlap"

type Orchestrator struct {
	pool   *github.ClientPool
	config *config.AppConfig
	logger *zap.Logger

	// stdout carries the report; status lines and progress go to stderr
	// whenever the report is machine readable.
	stdout   io.Writer
	status   io.Writer
	progress io.Writer
}

func NewOrchestrator(pool *github.ClientPool, cfg *config.AppConfig, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := &Orchestrator{
		pool:     pool,
		config:   cfg,
		logger:   logger,
		stdout:   color.Output,
		status:   color.Output,
		progress: os.Stderr,
	}
	if cfg.Report == string(display.FormatJSON) || cfg.Report == string(display.FormatCSV) {
		o.status = color.Error
	}
	return o
}

func (o *Orchestrator) collectorConfig() spider.CollectorConfig {
	cc := spider.ConfigFromGithub(o.config.GithubConfig())
	cc.SkipOrganizations = o.config.SkipOrganizations
	cc.Progress = o.progress
	cc.Status = o.status
	return cc
}

func (o *Orchestrator) Run(ctx context.Context) error {
	reportFormat, err := display.ParseOutputFormat(o.config.Report)
	if err != nil {
		return err
	}
	graphFormat, err := o.graphFormat()
	if err != nil {
		return err
	}

	collector := spider.NewCollector(o.pool, o.collectorConfig(), o.logger)

	accounts, err := collector.Collect(ctx, o.config.Candidates)
	if err != nil {
		return fmt.Errorf("failed to collect following lists: %w", err)
	}
	if len(accounts) == 0 {
		color.New(color.FgYellow).Fprintln(o.status, "[!] None of the candidate accounts could be collected")
	}

	store := overlap.NewStore(accounts).Sorted()
	opts := display.ReportOptions{Top: o.config.Top}
	if a, b, ok := o.config.MutualPair(); ok {
		opts.MutualA, opts.MutualB = a, b
	}
	report := display.BuildReport(store, opts)
	graph := store.Graph()

	if o.config.ResolveLogins {
		logins := collector.ResolveLogins(ctx, report.UnresolvedIDs())
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("login lookup interrupted: %w", err)
		}
		report.Annotate(logins)
		graph.Annotate(logins)
	}

	if err := o.writeGraph(graph, graphFormat); err != nil {
		return err
	}
	report.SetGraph(graph, o.config.Output, string(graphFormat))

	if err := display.Results(o.stdout, report, reportFormat); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	o.pool.DisplayPoolRateLimit(ctx, o.status)
	return nil
}

func (o *Orchestrator) graphFormat() (export.Format, error) {
	if o.config.Format == "" {
		return export.FormatFromPath(o.config.Output), nil
	}
	return export.ParseFormat(o.config.Format)
}

func (o *Orchestrator) writeGraph(g *overlap.FollowGraph, format export.Format) error {
	f, err := os.Create(o.config.Output)
	if err != nil {
		return fmt.Errorf("failed to create graph file: %w", err)
	}

	meta := export.Meta{
		Creator:     creator,
		Description: fmt.Sprintf("Accounts followed by %d candidates", len(g.Named)),
	}
	if err := export.Write(f, format, g, meta); err != nil {
		f.Close()
		return fmt.Errorf("failed to write graph: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write graph: %w", err)
	}

	o.logger.Debug("graph written",
		zap.String("path", o.config.Output),
		zap.String("format", string(format)),
		zap.Int("nodes", g.NodeCount()),
		zap.Int("edges", g.EdgeCount()))
	return nil
}
