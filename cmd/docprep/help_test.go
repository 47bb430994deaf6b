package main

import (
	"errors"
	"strings"
	"testing"
)

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want string
	}{
		{nil, "Commands:"},
		{[]string{"process"}, "DOCPREP_FLAGS"},
		{[]string{"config"}, "Usage: docprep config"},
		{[]string{"completion"}, "Usage: docprep completion <shell>"},
		{[]string{"version"}, "Usage: docprep version"},
		{[]string{"help"}, "Usage: docprep help"},
	}

	for _, tt := range tests {
		env := newTestEnv(nil)
		if err := runHelp(tt.args, env.Environment); err != nil {
			t.Errorf("runHelp(%v) error = %v", tt.args, err)
		}
		if !strings.Contains(env.stdout.String(), tt.want) {
			t.Errorf("runHelp(%v) stdout = %q, want it to contain %q", tt.args, env.stdout, tt.want)
		}
	}
}

func TestRunHelp_Unknown(t *testing.T) {
	t.Parallel()

	env := newTestEnv(nil)
	err := runHelp([]string{"render"}, env.Environment)
	if !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("error = %v, want ErrUnknownCommand", err)
	}
	if !strings.Contains(env.stderr.String(), "Usage: docprep") {
		t.Errorf("stderr = %q, want main usage", env.stderr)
	}
}
