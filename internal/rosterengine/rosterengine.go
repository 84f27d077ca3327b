// Package rosterengine spawns a UCI session from an engine roster entry,
// applying its configured options the same way regardless of whether the
// caller is the HTTP API or the arbiterctl CLI.
package rosterengine

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/chess-backend/uci-arbiter/configs"
	"github.com/chess-backend/uci-arbiter/pkg/session"
)

// Spawn spawns the engine registered under nickname, performs its UCI
// handshake, and applies the roster entry's configured options. A
// rejected option aborts construction unless the entry sets
// AllowInvalidOptions, in which case the option is skipped and logged.
func Spawn(ctx context.Context, roster configs.EngineRoster, nickname string, log *logrus.Entry) (*session.Session, error) {
	profile, ok := roster[nickname]
	if !ok {
		return nil, fmt.Errorf("rosterengine: unknown engine %q", nickname)
	}

	s, warnings, err := session.New(ctx, profile.Path, profile.Args, log)
	if err != nil {
		return nil, fmt.Errorf("rosterengine: spawn %q: %w", nickname, err)
	}
	for _, w := range warnings {
		log.WithField("engine", nickname).Warn(w)
	}

	for name, raw := range profile.Options {
		if err := applyOption(s, name, raw); err != nil {
			if profile.AllowInvalidOptions {
				log.WithField("engine", nickname).WithError(err).Warn("skipping roster option")
				continue
			}
			_ = s.Close()
			return nil, fmt.Errorf("rosterengine: configure %q option %q: %w", nickname, name, err)
		}
	}
	return s, nil
}

func applyOption(s *session.Session, name string, raw json.RawMessage) error {
	value, err := decodeOptionValue(s, name, raw)
	if err != nil {
		return err
	}
	return s.SetOption(name, value)
}

// decodeOptionValue converts a roster option's raw JSON value into the
// session.OptionValue variant matching the engine's discovered field
// type for name: a bool for Check, an integer for Spin, a label string
// resolved to its index for Combo, and a string for String.
func decodeOptionValue(s *session.Session, name string, raw json.RawMessage) (session.OptionValue, error) {
	field, ok := s.Options()[name]
	if !ok {
		return nil, fmt.Errorf("no such option")
	}
	switch f := field.(type) {
	case session.CheckField:
		var v bool
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("expected bool: %w", err)
		}
		return session.BoolValue{Value: v}, nil
	case session.SpinField:
		var v int64
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("expected integer: %w", err)
		}
		return session.IntValue{Value: v}, nil
	case session.ComboField:
		var label string
		if err := json.Unmarshal(raw, &label); err != nil {
			return nil, fmt.Errorf("expected string label: %w", err)
		}
		for i, l := range f.Labels {
			if l == label {
				return session.IntValue{Value: int64(i)}, nil
			}
		}
		return nil, fmt.Errorf("label %q not among combo values", label)
	case session.StringField:
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("expected string: %w", err)
		}
		return session.StringValue{Value: v}, nil
	default:
		return nil, fmt.Errorf("unsupported option field type")
	}
}
