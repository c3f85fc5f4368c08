package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/treykane/cli-diary/internal/config"
	"github.com/treykane/cli-diary/internal/diary"
)

func newEntryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Read and write single diary entries",
	}
	cmd.AddCommand(newEntryShowCmd(), newEntrySetCmd(), newEntryDeleteCmd(), newEntryImportCmd())
	return cmd
}

func newEntryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <YYYY-MM-DD>",
		Short: "Print an entry as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := diary.ParseDateKey(args[0])
			if err != nil {
				return err
			}
			cfg, err := config.LoadOrDefault()
			if err != nil {
				return err
			}
			s, _, err := openStoreForReading(cfg)
			if err != nil {
				return err
			}
			entry, ok := s.Get(key)
			if !ok {
				return fmt.Errorf("no entry for %s", key)
			}
			data, err := json.MarshalIndent(entry, "", "  ")
			if err != nil {
				return fmt.Errorf("encode entry: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

// entryFlags are the values `entry set` can change. Only flags the user
// passed are applied.
type entryFlags struct {
	text, image          string
	imgScale, imgX, imgY float64
	imgRotation          float64
	textX, textY         float64
	textScale            float64
	textColor, dateColor string
	filter               string
	filterOpacity        float64
}

func newEntrySetCmd() *cobra.Command {
	var f entryFlags
	cmd := &cobra.Command{
		Use:   "set <YYYY-MM-DD>",
		Short: "Create or update an entry",
		Long: `Create or update the entry for a date. Only the given flags change; other
stored values are kept. Presentation values are stored as given. An entry left
with neither text nor a photo is deleted, as in the calendar view.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := diary.ParseDateKey(args[0])
			if err != nil {
				return err
			}
			cfg, err := config.LoadOrDefault()
			if err != nil {
				return err
			}
			s, err := openStoreForWriting(cfg)
			if err != nil {
				return err
			}

			entry, existed := s.Get(key)
			entry, err = f.apply(cmd, entry)
			if err != nil {
				return err
			}
			if err := entry.Validate(); err != nil {
				return err
			}
			if entry.IsEmpty() {
				if !existed {
					fmt.Fprintf(cmd.OutOrStdout(), "nothing to save for %s\n", key)
					return nil
				}
				if err := s.Delete(key); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s (no text or photo left)\n", key)
				return nil
			}
			if err := s.Put(key, entry); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", key)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.text, "text", "", "entry text, at most 30 characters")
	flags.StringVar(&f.image, "image", "", "photo reference (URL or path); empty clears it")
	flags.Float64Var(&f.imgScale, "img-scale", 1, "photo scale")
	flags.Float64Var(&f.imgX, "img-x", 0, "photo horizontal offset")
	flags.Float64Var(&f.imgY, "img-y", 0, "photo vertical offset")
	flags.Float64Var(&f.imgRotation, "img-rotation", 0, "photo rotation in radians")
	flags.Float64Var(&f.textX, "text-x", 0, "text horizontal offset")
	flags.Float64Var(&f.textY, "text-y", 0, "text vertical offset")
	flags.Float64Var(&f.textScale, "text-scale", 1, "text scale")
	flags.StringVar(&f.textColor, "text-color", "", "text colour")
	flags.StringVar(&f.dateColor, "date-color", "", "date colour")
	flags.StringVar(&f.filter, "filter", "", "photo filter: none, black or white")
	flags.Float64Var(&f.filterOpacity, "filter-opacity", 0, "photo filter opacity, 0 to 1")
	return cmd
}

func (f entryFlags) apply(cmd *cobra.Command, entry diary.Entry) (diary.Entry, error) {
	entry = entry.Clone()
	changed := cmd.Flags().Changed
	setFloat := func(name string, dst **float64, v float64) {
		if changed(name) {
			*dst = diary.Float(v)
		}
	}

	if changed("text") {
		entry.Text = f.text
	}
	if changed("image") {
		entry.Image = f.image
	}
	setFloat("img-scale", &entry.ImgScale, f.imgScale)
	setFloat("img-x", &entry.ImgX, f.imgX)
	setFloat("img-y", &entry.ImgY, f.imgY)
	setFloat("img-rotation", &entry.ImgRotation, f.imgRotation)
	setFloat("text-x", &entry.TextX, f.textX)
	setFloat("text-y", &entry.TextY, f.textY)
	setFloat("text-scale", &entry.TextScale, f.textScale)
	setFloat("filter-opacity", &entry.FilterOpacity, f.filterOpacity)
	if changed("text-color") {
		entry.TextColor = f.textColor
	}
	if changed("date-color") {
		entry.DateColor = f.dateColor
	}
	if changed("filter") {
		filter, err := diary.ParseFilterColor(f.filter)
		if err != nil {
			return diary.Entry{}, err
		}
		entry.FilterColor = filter
	}
	return entry, nil
}

func newEntryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <YYYY-MM-DD>",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := diary.ParseDateKey(args[0])
			if err != nil {
				return err
			}
			cfg, err := config.LoadOrDefault()
			if err != nil {
				return err
			}
			s, err := openStoreForWriting(cfg)
			if err != nil {
				return err
			}
			if err := s.Delete(key); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", key)
			return nil
		},
	}
}

func newEntryImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Merge entries from another entries file",
		Long: `Merge a JSON object of entries keyed by date into the store. Incoming
entries replace local ones with the same date. Legacy Y-M-D keys are accepted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}
			remote := map[string]diary.Entry{}
			if err := json.Unmarshal(data, &remote); err != nil {
				return fmt.Errorf("parse import file: %w", err)
			}

			cfg, err := config.LoadOrDefault()
			if err != nil {
				return err
			}
			s, err := openStoreForWriting(cfg)
			if err != nil {
				return err
			}
			changed, err := s.Merge(remote)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "merged %d of %d entries\n", changed, len(remote))
			return nil
		},
	}
}
