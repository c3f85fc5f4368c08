package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/treykane/cli-diary/internal/config"
	"github.com/treykane/cli-diary/internal/theme"
)

func newSettingsCmd() *cobra.Command {
	var (
		mode                 gridModeValue
		themeKey             string
		dark, photoOnly      bool
		entriesPath, exports string
	)
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change saved settings",
		Long: `Without flags, print the saved settings. With flags, change them and save.
Themes: ` + themeList() + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadOrDefault()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.NFlag() > 0 {
				if mode.IsSet() {
					cfg.GridMode = mode.mode
				}
				if flags.Changed("theme") {
					if cfg.Theme, err = theme.ParseKey(themeKey); err != nil {
						return err
					}
				}
				if flags.Changed("dark") {
					cfg.DarkMode = dark
				}
				if flags.Changed("photo-only") {
					cfg.PhotoOnly = photoOnly
				}
				if flags.Changed("entries") {
					cfg.EntriesPath = entriesPath
				}
				if flags.Changed("export-dir") {
					cfg.ExportDir = exports
				}
				if err := config.Save(cfg); err != nil {
					return err
				}
				if cfg, err = config.Load(); err != nil {
					return err
				}
			}
			printSettings(cmd.OutOrStdout(), cfg)
			return nil
		},
	}

	flags := cmd.Flags()
	addModeFlag(flags, &mode, "grid mode: standard, sequential or weekly")
	flags.StringVar(&themeKey, "theme", "", "colour theme")
	flags.BoolVar(&dark, "dark", false, "dark variant of the theme")
	flags.BoolVar(&photoOnly, "photo-only", false, "hide entry text in the grid")
	flags.StringVar(&entriesPath, "entries", "", "entries file path")
	flags.StringVar(&exports, "export-dir", "", "directory for exported months")
	return cmd
}

func printSettings(w io.Writer, cfg config.Config) {
	fmt.Fprintf(w, "grid mode:   %s\n", cfg.GridMode)
	fmt.Fprintf(w, "theme:       %s\n", cfg.Theme)
	fmt.Fprintf(w, "dark:        %t\n", cfg.DarkMode)
	fmt.Fprintf(w, "photo only:  %t\n", cfg.PhotoOnly)
	fmt.Fprintf(w, "entries:     %s\n", cfg.EntriesPath)
	fmt.Fprintf(w, "export dir:  %s\n", cfg.ExportDir)
	actions := make([]string, 0, len(cfg.Keybindings))
	for action := range cfg.Keybindings {
		actions = append(actions, action)
	}
	sort.Strings(actions)
	for _, action := range actions {
		fmt.Fprintf(w, "key %s = %s\n", action, cfg.Keybindings[action])
	}
}

func themeList() string {
	keys := theme.Keys()
	names := make([]string, len(keys))
	for i, key := range keys {
		names[i] = string(key)
	}
	return strings.Join(names, ", ")
}
