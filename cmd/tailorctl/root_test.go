package main

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{"migrate": false, "process": false, "import": false, "score": false, "token": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("command %q not registered", name)
		}
	}
}

func TestParseUserFlag(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("user", "", "")

	if _, err := parseUserFlag(cmd); err == nil {
		t.Fatalf("expected error for empty user")
	}

	id := uuid.New()
	_ = cmd.Flags().Set("user", id.String())
	got, err := parseUserFlag(cmd)
	if err != nil || got != id {
		t.Fatalf("got %s, %v", got, err)
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := printJSON(&buf, map[string]int{"fit_score": 70}); err != nil {
		t.Fatalf("printJSON: %v", err)
	}
	if buf.String() != "{\n  \"fit_score\": 70\n}\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
