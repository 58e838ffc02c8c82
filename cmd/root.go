package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/kitware/sensei-site/config"
	"github.com/kitware/sensei-site/pkg/logger"
	"github.com/kitware/sensei-site/site"
)

// app carries the state shared by every subcommand once flags are parsed.
type app struct {
	cfgFile  string
	siteFile string

	cfg *config.Config
	log *slog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "sensei-site",
		Short: "Manage the SENSEI documentation site configuration",
		Long: `sensei-site owns the configuration record the documentation site generator
consumes: title, author, URLs, timezone and markdown dialect.

It prints and validates the record, exports it as the generator's config.js
(or JSON, YAML, TOML), renders markdown pages with the site chrome, checks
the published links and serves a local preview.

Examples:
  sensei-site show                       Print the effective record
  sensei-site export --out doc/config.js Write the generator module
  sensei-site serve --watch              Preview and reload on edits`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "tool config file (default ./config/config.yaml or ./config.yaml)")
	root.PersistentFlags().StringVar(&a.siteFile, "site", "", "site override file (yaml, json or toml)")

	root.AddCommand(
		newShowCommand(a),
		newValidateCommand(a),
		newExportCommand(a),
		newRenderCommand(a),
		newCheckCommand(a),
		newServeCommand(a),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.siteFile != "" {
		cfg.Site.File = a.siteFile
	}

	a.cfg = cfg
	a.log = logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Logging.Level, false, cfg.Server.Environment)

	return nil
}

func (a *app) loadSite() (site.Site, error) {
	s, err := site.Load(a.cfg.Site.File)
	if err != nil {
		a.log.Error("failed to load site", slog.String("file", a.cfg.Site.File), slog.Any("err", err))
		return site.Site{}, err
	}
	return s, nil
}
