package main

import (
	"bytes"
	"strings"
	"testing"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "list of values",
			args: []string{"--now", "2018-08-04 14:00", "7/17 4 or 5 PM"},
			want: []string{"2018-07-17 16:00", "2018-07-17 17:00"},
		},
		{
			name: "no inference",
			args: []string{"--now", "2018-08-04 14:00", "--no-infer", "5p"},
			want: []string{"17:00"},
		},
		{
			name: "previous direction",
			args: []string{"--now", "2018-08-04 14:00", "--direction", "previous", "Monday"},
			want: []string{"2018-07-30 00:00"},
		},
		{
			name: "date-only now",
			args: []string{"--now", "2018-08-04", "7/17"},
			want: []string{"2018-07-17 00:00"},
		},
		{
			name: "matched offsets",
			args: []string{"--now", "2018-08-04 14:00", "--matched", "see you 7/17"},
			want: []string{"\"7/17\" [8:12]\t2018-07-17 00:00"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCommand(t, tt.args...)
			if err != nil {
				t.Fatalf("Execute(%v): %v", tt.args, err)
			}
			var lines []string
			if out != "" {
				lines = strings.Split(strings.TrimRight(out, "\n"), "\n")
			}
			if len(lines) != len(tt.want) {
				t.Fatalf("output = %q, want %d lines", out, len(tt.want))
			}
			for i, want := range tt.want {
				if lines[i] != want {
					t.Errorf("line %d = %q, want %q", i, lines[i], want)
				}
			}
		})
	}
}

func TestRootCmdErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad direction", []string{"--direction", "sideways", "Monday"}},
		{"bad now", []string{"--now", "yesterday-ish", "Monday"}},
		{"no arguments", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runCommand(t, tt.args...); err == nil {
				t.Errorf("Execute(%v) succeeded, want error", tt.args)
			}
		})
	}
}
