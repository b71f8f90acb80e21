package ui

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func testConsole(input string) (*Console, *bytes.Buffer) {
	var out bytes.Buffer
	return &Console{
		out:    &out,
		reader: bufio.NewReader(strings.NewReader(input)),
		width:  80,
	}, &out
}

func TestToolResultTruncation(t *testing.T) {
	c, out := testConsole("")

	long := strings.Repeat("x", resultPreviewLimit+100)
	c.ToolResult("read_neo4j_cypher", long)

	rendered := out.String()
	if !strings.Contains(rendered, "...") {
		t.Error("long result not truncated")
	}
	if strings.Contains(rendered, strings.Repeat("x", resultPreviewLimit+1)) {
		t.Error("rendered more than the preview limit")
	}
}

func TestToolResultShortPassesThrough(t *testing.T) {
	c, out := testConsole("")
	c.ToolResult("get_neo4j_schema", "short result")
	if !strings.Contains(out.String(), "short result") {
		t.Errorf("output = %q", out.String())
	}
}

func TestReadLineExitKeywords(t *testing.T) {
	for _, word := range []string{"exit", "quit", "bye", "EXIT", "  Bye  "} {
		c, _ := testConsole(word + "\n")
		if _, ok := c.ReadLine(); ok {
			t.Errorf("%q did not end the session", word)
		}
	}
}

func TestReadLineEOF(t *testing.T) {
	c, _ := testConsole("")
	if _, ok := c.ReadLine(); ok {
		t.Error("EOF did not end the session")
	}
}

func TestReadLinePassesQuestionsThrough(t *testing.T) {
	c, _ := testConsole("how many customers?\n")
	line, ok := c.ReadLine()
	if !ok || line != "how many customers?" {
		t.Errorf("line = %q, ok = %v", line, ok)
	}
}

func TestReadLineBlankLine(t *testing.T) {
	c, _ := testConsole("\n")
	line, ok := c.ReadLine()
	if !ok || line != "" {
		t.Errorf("line = %q, ok = %v, want empty line with ok", line, ok)
	}
}
