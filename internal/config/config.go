// Package config handles application configuration and setup
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/retroenv/chip8vm/internal/host"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

var (
	errUnknownProfile     = errors.New("unknown quirk profile")
	errUnknownQuirk       = errors.New("unknown quirk")
	errUnknownFaultPolicy = errors.New("unknown fault policy")
)

// quirkNames maps the names used on the command line to the quirk fields.
var quirkNames = map[string]func(q *vm.Quirks) *bool{
	"shift-uses-y":            func(q *vm.Quirks) *bool { return &q.ShiftUsesY },
	"memory-increments-index": func(q *vm.Quirks) *bool { return &q.MemoryIncrementsIndex },
	"jump-uses-v0":            func(q *vm.Quirks) *bool { return &q.JumpUsesV0 },
	"strict-not-borrow":       func(q *vm.Quirks) *bool { return &q.StrictNotBorrow },
	"logic-resets-flag":       func(q *vm.Quirks) *bool { return &q.LogicResetsFlag },
}

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// Quirks returns the quirks of the named profile with the comma separated
// overrides applied. An override prefixed with ! disables the quirk.
func Quirks(profile, overrides string) (vm.Quirks, error) {
	var quirks vm.Quirks
	switch strings.ToLower(profile) {
	case "", options.ProfileModern:
		quirks = vm.ModernQuirks()
	case options.ProfileLegacy:
		quirks = vm.LegacyQuirks()
	default:
		return vm.Quirks{}, fmt.Errorf("%w '%s', valid profiles: %s, %s",
			errUnknownProfile, profile, options.ProfileModern, options.ProfileLegacy)
	}

	for override := range strings.SplitSeq(overrides, ",") {
		name := strings.ToLower(strings.TrimSpace(override))
		if name == "" {
			continue
		}

		enabled := true
		if rest, ok := strings.CutPrefix(name, "!"); ok {
			name = rest
			enabled = false
		}

		field, ok := quirkNames[name]
		if !ok {
			return vm.Quirks{}, fmt.Errorf("%w '%s', valid quirks: %s",
				errUnknownQuirk, name, strings.Join(QuirkNames(), ", "))
		}
		*field(&quirks) = enabled
	}

	return quirks, nil
}

// QuirkNames returns the sorted names of all quirks.
func QuirkNames() []string {
	names := make([]string, 0, len(quirkNames))
	for name := range quirkNames {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// FaultPolicy returns the runner fault policy for the given name.
func FaultPolicy(name string) (host.FaultPolicy, error) {
	switch strings.ToLower(name) {
	case "", options.OnFaultHalt:
		return host.FaultHalt, nil
	case options.OnFaultSkip:
		return host.FaultSkip, nil
	default:
		return 0, fmt.Errorf("%w '%s', valid policies: %s, %s",
			errUnknownFaultPolicy, name, options.OnFaultHalt, options.OnFaultSkip)
	}
}
