package main

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"rewatch/internal/catalog"
	"rewatch/internal/config"
	"rewatch/internal/importer"
	"rewatch/internal/logging"
	"rewatch/internal/memory"
	"rewatch/internal/notes"
	"rewatch/internal/records"
	"rewatch/internal/resolve"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// runtime bundles the wired stores and services one command invocation uses.
type runtime struct {
	cfg      *config.Config
	logger   *slog.Logger
	memory   *memory.Store
	records  *records.Store
	notes    *notes.Store
	catalog  *catalog.Client
	resolver *resolve.SeriesResolver
	importer *importer.Importer
	prompter resolve.Prompter

	logFile io.Closer
}

// openRuntime wires every service against the loaded configuration. Call
// close when done.
func (c *commandContext) openRuntime() (*runtime, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}

	rt := &runtime{cfg: cfg}
	closeAll := func() {
		if rt.records != nil {
			_ = rt.records.Close()
		}
		if rt.logFile != nil {
			_ = rt.logFile.Close()
		}
	}

	logOutput := io.Writer(os.Stderr)
	if path := cfg.LogPath(); path != "" {
		if file, err := logging.OpenLogFile(path); err == nil {
			logOutput = file
			rt.logFile = file
		}
	}
	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: logOutput,
	})
	if err != nil {
		closeAll()
		return nil, nil, err
	}
	rt.logger = logger

	rt.memory, err = memory.Open(cfg.MemoryPath(), logger)
	if err != nil {
		closeAll()
		return nil, nil, err
	}
	rt.records, err = records.Open(cfg.RecordsPath(), logger)
	if err != nil {
		closeAll()
		return nil, nil, err
	}
	rt.notes, err = notes.NewStore(cfg.Paths.NotesDir, logger)
	if err != nil {
		closeAll()
		return nil, nil, err
	}
	rt.catalog, err = catalog.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language)
	if err != nil {
		closeAll()
		return nil, nil, err
	}

	rt.prompter = newConsolePrompter()
	rt.resolver = resolve.NewSeriesResolver(rt.memory, rt.records, rt.catalog, rt.prompter, logger)
	rt.importer = importer.New(rt.memory, rt.records, rt.resolver, rt.prompter, rt.notes, logger)

	return rt, closeAll, nil
}
