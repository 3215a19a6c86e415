package main

import (
	"strings"
	"testing"

	"github.com/telegraph-tools/telegraph-mcp-server/tools"
)

func TestServerIdentity(t *testing.T) {
	if ServerName != "telegraph-mcp-server" {
		t.Errorf("ServerName = %q", ServerName)
	}
	if ServerVersion == "" {
		t.Error("ServerVersion should not be empty")
	}
}

func TestInstructionsMentionEveryTool(t *testing.T) {
	for _, spec := range tools.AllTools {
		if !strings.Contains(serverInstructions, spec.Name) {
			t.Errorf("server instructions do not mention %s", spec.Name)
		}
	}
}

func TestInstructionsMentionConfiguration(t *testing.T) {
	for _, envVar := range []string{
		"TELEGRAPH_ACCESS_TOKEN",
		"TELEGRAPH_API_URL",
		"TELEGRAPH_TIMEOUT",
		"TELEGRAPH_USER_AGENT",
	} {
		if !strings.Contains(serverInstructions, envVar) {
			t.Errorf("server instructions do not mention %s", envVar)
		}
	}
}
