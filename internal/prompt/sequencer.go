package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/archetype-labs/archgen/internal/answers"
	"github.com/archetype-labs/archgen/internal/identity"
	"github.com/charmbracelet/log"
)

// Group is a named set of questions answered together.
type Group struct {
	Name   string
	Banner string

	// When reports whether the group runs. A nil When always runs.
	When func(b *answers.Builder) bool
	// Skip assigns the group's fields when When returns false.
	Skip func(b *answers.Builder) error
	// Ask runs the questions and commits answers to b.
	Ask func(ctx context.Context, d Driver, b *answers.Builder) error
}

// Sequencer runs groups in order against a single Builder.
type Sequencer struct {
	driver  Driver
	appName string
	groups  []Group
}

// NewSequencer returns a Sequencer running the standard groups, with identity
// defaults taken from id.
func NewSequencer(d Driver, appName string, id identity.Identity) *Sequencer {
	return &Sequencer{driver: d, appName: appName, groups: StandardGroups(id)}
}

// Groups returns the groups this sequencer runs, in order.
func (s *Sequencer) Groups() []Group { return s.groups }

// Run asks every group and returns the completed Answers. An operator abort
// returns ErrAborted and no Answers.
func (s *Sequencer) Run(ctx context.Context) (*answers.Answers, error) {
	b := answers.NewBuilder()
	if err := b.SetAppName(s.appName); err != nil {
		return nil, err
	}

	for _, g := range s.groups {
		if err := ctx.Err(); err != nil {
			return nil, ErrAborted
		}

		if g.When != nil && !g.When(b) {
			log.Debug("skipping prompt group", "group", g.Name)
			if g.Skip != nil {
				if err := g.Skip(b); err != nil {
					return nil, fmt.Errorf("defaulting %s answers: %w", g.Name, err)
				}
			}
			continue
		}

		if g.Banner != "" {
			if err := s.driver.Info(ctx, g.Banner); err != nil {
				return nil, err
			}
		}
		if err := g.Ask(ctx, s.driver, b); err != nil {
			if errors.Is(err, ErrAborted) {
				return nil, ErrAborted
			}
			return nil, fmt.Errorf("%s prompts: %w", g.Name, err)
		}
		log.Debug("prompt group complete", "group", g.Name)
	}

	return b.Build()
}

// askInput asks until set accepts the answer. Validation failures are shown
// to the operator and the question is repeated; other errors stop the loop.
func askInput(ctx context.Context, d Driver, cfg InputConfig, set func(string) error) error {
	for {
		v, err := d.Input(ctx, cfg)
		if err != nil {
			return err
		}
		err = set(v)
		if err == nil {
			return nil
		}
		if !answers.IsValidation(err) {
			return err
		}
		if err := d.Info(ctx, err.Error()); err != nil {
			return err
		}
	}
}

func askConfirm(ctx context.Context, d Driver, msg string, set func(bool) error) error {
	v, err := d.Confirm(ctx, ConfirmConfig{Message: msg})
	if err != nil {
		return err
	}
	return set(v)
}

func askSelect(ctx context.Context, d Driver, msg string, options []string, set func(string) error) error {
	for {
		i, err := d.Select(ctx, SelectConfig{Message: msg, Options: options})
		if err != nil {
			return err
		}
		err = set(options[i])
		if err == nil {
			return nil
		}
		if !answers.IsValidation(err) {
			return err
		}
	}
}
