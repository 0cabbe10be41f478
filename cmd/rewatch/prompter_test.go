package main

import (
	"context"
	"testing"
)

func TestParseChoice(t *testing.T) {
	tests := []struct {
		line   string
		count  int
		choice int
		ok     bool
	}{
		{"1\n", 3, 0, true},
		{"3\n", 3, 2, true},
		{"  2  \n", 3, 1, true},
		{"\n", 3, 0, false},
		{"0\n", 3, 0, false},
		{"4\n", 3, 0, false},
		{"x\n", 3, 0, false},
	}
	for _, tt := range tests {
		choice, ok := parseChoice(tt.line, tt.count)
		if choice != tt.choice || ok != tt.ok {
			t.Errorf("parseChoice(%q, %d) = (%d, %v), want (%d, %v)",
				tt.line, tt.count, choice, ok, tt.choice, tt.ok)
		}
	}
}

func TestRootCommandWiring(t *testing.T) {
	cmd := newRootCommand()
	for _, name := range []string{"import", "resolve", "history", "memory", "config"} {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestNonInteractivePrompterDeclines(t *testing.T) {
	p := &consolePrompter{interactive: false}
	_, ok, err := p.SelectOption(context.Background(), "pick", []string{"a", "b"})
	if err != nil || ok {
		t.Fatalf("non-interactive prompt must decline: ok=%v err=%v", ok, err)
	}
	confirmed, err := p.Confirm(context.Background(), "sure?")
	if err != nil || confirmed {
		t.Fatalf("non-interactive confirm must decline: %v %v", confirmed, err)
	}
}
