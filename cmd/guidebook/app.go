package main

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/grafana/guidebook/internal/config"
	"github.com/grafana/guidebook/internal/logging"
	"github.com/grafana/guidebook/internal/pages"
	"github.com/grafana/guidebook/internal/search"
)

// app carries the state shared by all commands.
type app struct {
	fs         afero.Fs
	logger     *logrus.Logger
	configPath string
	cfg        *config.Config
	serveStdio func(s *server.MCPServer, opts ...server.StdioOption) error
}

func newApp(fsys afero.Fs, logger *logrus.Logger) *app {
	return &app{
		fs:         fsys,
		logger:     logger,
		serveStdio: server.ServeStdio,
	}
}

// configure loads the configuration and rebuilds the logger from it.
func (a *app) configure(loader *config.Loader) error {
	cfg, err := loader.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: a.logger.Out,
	})
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	logging.SetDefault(logger)

	a.logger.WithFields(logrus.Fields{
		"content_dir": cfg.ContentDir,
		"out_dir":     cfg.OutDir,
		"extensions":  cfg.Extensions,
	}).Debug("Configuration loaded")

	return nil
}

// buildResult is a scanned guide together with its search documents.
type buildResult struct {
	guide     *pages.Guide
	documents []search.Document
}

// scan reads the content directory into a linked guide and its search documents.
func (a *app) scan() (*buildResult, error) {
	opts, err := a.cfg.ScanOptions(a.fs)
	if err != nil {
		return nil, err
	}
	opts = append(opts, pages.WithLogger(a.logger))

	a.logger.WithField("content_dir", a.cfg.ContentDir).Info("Scanning content")

	root, err := pages.ScanTree(a.fs, a.cfg.ContentDir, opts...)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	documents, err := search.ExtractDocuments(a.fs, a.cfg.ContentDir, root)
	if err != nil {
		return nil, fmt.Errorf("document extraction failed: %w", err)
	}

	guide := pages.NewGuide(root)
	a.logger.WithFields(logrus.Fields{
		"pages":     len(guide.Order),
		"documents": len(documents),
	}).Info("Scanned content")

	return &buildResult{guide: guide, documents: documents}, nil
}

func (a *app) buildIndex(documents []search.Document) (*search.Index, error) {
	index, err := search.BuildIndex(documents, a.cfg.SearchOptions())
	if err != nil {
		return nil, fmt.Errorf("indexing failed: %w", err)
	}
	return index, nil
}

// loadBuilt reads the guide and search index written by the build command.
func (a *app) loadBuilt() (*pages.Guide, *search.Index, error) {
	data, err := afero.ReadFile(a.fs, a.cfg.GuidePath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read guide (run `guidebook build` first): %w", err)
	}
	guide, err := pages.LoadJSON(data)
	if err != nil {
		return nil, nil, err
	}

	data, err = afero.ReadFile(a.fs, a.cfg.SearchPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read search index (run `guidebook build` first): %w", err)
	}
	index, err := search.LoadIndex(data)
	if err != nil {
		return nil, nil, err
	}

	return guide, index, nil
}
