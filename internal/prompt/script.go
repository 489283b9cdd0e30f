package prompt

import (
	"context"
	"fmt"
	"io"
)

// Script is a Driver that replays canned answers in order. Input expects a
// string, Confirm a bool, and Select either an option label or an index.
// Validators are not applied; callers see the raw value, as they would if a
// terminal driver let invalid input through.
//
// Running out of answers is reported as ErrAborted, which mirrors an operator
// closing stdin.
type Script struct {
	Answers []any
	Out     io.Writer

	// Asked records each prompt message in the order it was shown.
	Asked []string
	next  int
}

// NewScript returns a Script replaying answers.
func NewScript(answers ...any) *Script {
	return &Script{Answers: answers}
}

func (s *Script) pop(ctx context.Context, msg string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, ErrAborted
	}
	s.Asked = append(s.Asked, msg)
	if s.next >= len(s.Answers) {
		return nil, ErrAborted
	}
	v := s.Answers[s.next]
	s.next++
	return v, nil
}

// Remaining returns the number of unread answers.
func (s *Script) Remaining() int { return len(s.Answers) - s.next }

func (s *Script) Input(ctx context.Context, cfg InputConfig) (string, error) {
	v, err := s.pop(ctx, cfg.Message)
	if err != nil {
		return "", err
	}
	str, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("script answer for %q is %T, want string", cfg.Message, v)
	}
	if str == "" {
		return cfg.Default, nil
	}
	return str, nil
}

func (s *Script) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	v, err := s.pop(ctx, cfg.Message)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("script answer for %q is %T, want bool", cfg.Message, v)
	}
	return b, nil
}

func (s *Script) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	v, err := s.pop(ctx, cfg.Message)
	if err != nil {
		return 0, err
	}
	switch sel := v.(type) {
	case int:
		if sel < 0 || sel >= len(cfg.Options) {
			return 0, fmt.Errorf("script index %d out of range for %q", sel, cfg.Message)
		}
		return sel, nil
	case string:
		for i, o := range cfg.Options {
			if o == sel {
				return i, nil
			}
		}
		return 0, fmt.Errorf("script option %q not offered by %q", sel, cfg.Message)
	}
	return 0, fmt.Errorf("script answer for %q is %T, want string or int", cfg.Message, v)
}

func (s *Script) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return ErrAborted
	}
	if s.Out != nil {
		_, err := fmt.Fprintln(s.Out, msg)
		return err
	}
	return nil
}
