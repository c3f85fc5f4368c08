package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/treykane/cli-diary/internal/config"
	"github.com/treykane/cli-diary/internal/export"
	"github.com/treykane/cli-diary/internal/theme"
)

const pdfTimeout = 2 * time.Minute

func newExportCmd() *cobra.Command {
	var (
		pdf       bool
		outDir    string
		mode      gridModeValue
		themeKey  string
		photoOnly bool
	)
	cmd := &cobra.Command{
		Use:   "export [YYYY-MM]",
		Short: "Write a month as a printable HTML page, optionally PDF",
		Long: `Write the month as an A4 HTML page. With --pdf the page is also converted
with pandoc, which must be on PATH. Flags override saved settings for this run only.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := parseMonthArg(args)
			if err != nil {
				return err
			}
			cfg, err := config.LoadOrDefault()
			if err != nil {
				return err
			}
			params := export.Params{
				Year:      year,
				Month:     month,
				Theme:     cfg.ThemeSelection(),
				Mode:      mode.resolve(cfg),
				PhotoOnly: cfg.PhotoOnly,
			}
			if cmd.Flags().Changed("theme") {
				if params.Theme.Key, err = theme.ParseKey(themeKey); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("photo-only") {
				params.PhotoOnly = photoOnly
			}

			s, _, err := openStoreForReading(cfg)
			if err != nil {
				return err
			}
			params.Entries = s.Month(year, month)

			if outDir == "" {
				outDir = cfg.ExportDir
			}
			base := filepath.Join(outDir, export.FileName(year, month))
			htmlPath := base + ".html"
			if err := export.WriteFile(htmlPath, params); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), htmlPath)
			if !pdf {
				return nil
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), pdfTimeout)
			defer cancel()
			pdfPath := base + ".pdf"
			if err := export.PDF(ctx, htmlPath, pdfPath); err != nil {
				if errors.Is(err, export.ErrPandocMissing) {
					return fmt.Errorf("HTML written, but PDF needs pandoc on PATH: %w", err)
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pdfPath)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&pdf, "pdf", false, "also convert to PDF with pandoc")
	flags.StringVar(&outDir, "out", "", "output directory (default from settings)")
	addModeFlag(flags, &mode, "grid mode for this export")
	flags.StringVar(&themeKey, "theme", "", "theme for this export")
	flags.BoolVar(&photoOnly, "photo-only", false, "hide entry text for this export")
	return cmd
}
