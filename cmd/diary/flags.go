package main

import (
	"github.com/spf13/pflag"

	"github.com/treykane/cli-diary/internal/calendar"
	"github.com/treykane/cli-diary/internal/config"
)

// gridModeValue is a --mode flag that is validated while flags are parsed.
type gridModeValue struct {
	mode calendar.GridMode
}

var _ pflag.Value = (*gridModeValue)(nil)

func (v *gridModeValue) String() string { return string(v.mode) }

func (v *gridModeValue) Set(value string) error {
	mode, err := calendar.ParseGridMode(value)
	if err != nil {
		return err
	}
	v.mode = mode
	return nil
}

func (v *gridModeValue) Type() string { return "mode" }

// IsSet reports whether --mode was given.
func (v *gridModeValue) IsSet() bool { return v.mode != "" }

// addModeFlag registers --mode on flags.
func addModeFlag(flags *pflag.FlagSet, v *gridModeValue, usage string) {
	flags.Var(v, "mode", usage)
}

// resolve returns the flag's mode, falling back to the saved setting.
func (v *gridModeValue) resolve(cfg config.Config) calendar.GridMode {
	if v.IsSet() {
		return v.mode
	}
	if cfg.GridMode.Valid() {
		return cfg.GridMode
	}
	return calendar.DefaultMode
}
