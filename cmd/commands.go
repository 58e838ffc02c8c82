package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kitware/sensei-site/internal/export"
	"github.com/kitware/sensei-site/internal/linkcheck"
	"github.com/kitware/sensei-site/internal/preview"
)

func newShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective site record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadSite()
			if err != nil {
				return err
			}
			return export.Write(cmd.OutOrStdout(), s, export.FormatYAML)
		},
	}
}

func newValidateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load and validate the site record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.loadSite(); err != nil {
				return err
			}

			source := a.cfg.Site.File
			if source == "" {
				source = "defaults"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "site configuration is valid (%s)\n", source)
			return nil
		},
	}
}

func newExportCommand(a *app) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the site record for the site generator",
		Long: `Write the site record in the given format. The default js format is the
CommonJS module the site generator loads. Without --out the export goes to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = a.cfg.Export.Format
			}
			if !cmd.Flags().Changed("out") {
				out = a.cfg.Export.Out
			}

			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			s, err := a.loadSite()
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				return export.Write(cmd.OutOrStdout(), s, f)
			}

			if err := export.WriteFile(out, s, f); err != nil {
				return err
			}
			a.log.Info("exported site", slog.String("format", string(f)), slog.String("file", out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "js", "export format: js, json, yaml or toml")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")

	return cmd
}

func newRenderCommand(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "render <file.md>",
		Short: "Render a markdown page with the site chrome",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadSite()
			if err != nil {
				return err
			}

			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
					return err
				}
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			name := args[0]
			if rel, err := filepath.Rel(a.cfg.Docs.Dir, args[0]); err == nil && filepath.IsLocal(rel) {
				name = rel
			}

			return preview.New(s).Render(w, filepath.ToSlash(name), src)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")

	return cmd
}

func newCheckCommand(a *app) *cobra.Command {
	var timeout string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that the links published by the site respond",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("timeout") {
				a.cfg.Check.Timeout = timeout
				if err := a.cfg.Validate(); err != nil {
					return err
				}
			}

			s, err := a.loadSite()
			if err != nil {
				return err
			}

			links := linkcheck.Links(s)
			results := linkcheck.New(a.cfg.CheckTimeout(), a.log).Check(cmd.Context(), links)

			unhealthy := 0
			for _, r := range results {
				state := "ok"
				if !r.Healthy {
					state = "FAIL"
					unhealthy++
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-4s %-10s %3d %s\n", state, r.Name, r.Status, r.URL)
			}

			if unhealthy > 0 {
				return fmt.Errorf("%d of %d links unhealthy", unhealthy, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&timeout, "timeout", "5s", "per-link timeout")

	return cmd
}
