package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"
)

func TestAuditLogRecord(t *testing.T) {
	log, err := NewAuditLog(t.TempDir())
	if err != nil {
		t.Fatalf("NewAuditLog: %v", err)
	}
	defer log.Close()

	log.Record("read_neo4j_cypher", map[string]any{"query": "RETURN 1"}, nil, 40*time.Millisecond)
	log.Record("write_neo4j_cypher", map[string]any{"query": "BOGUS"}, fmt.Errorf("invalid cypher"), 5*time.Millisecond)

	rows, err := log.db.Query(`SELECT tool, arguments, outcome, error, duration_ms FROM tool_invocations WHERE run_id = ? ORDER BY id`, log.RunID())
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	defer rows.Close()

	type row struct {
		tool, args, outcome, errText string
		durationMS                   int64
	}
	var got []row
	for rows.Next() {
		var r row
		var errCol *string
		if err := rows.Scan(&r.tool, &r.args, &r.outcome, &errCol, &r.durationMS); err != nil {
			t.Fatalf("scan: %v", err)
		}
		if errCol != nil {
			r.errText = *errCol
		}
		got = append(got, r)
	}

	if len(got) != 2 {
		t.Fatalf("recorded %d rows, want 2", len(got))
	}
	if got[0].tool != "read_neo4j_cypher" || got[0].outcome != "ok" || got[0].errText != "" {
		t.Errorf("first row = %+v", got[0])
	}
	if got[0].durationMS != 40 {
		t.Errorf("duration_ms = %d, want 40", got[0].durationMS)
	}
	if got[1].outcome != "error" || got[1].errText != "invalid cypher" {
		t.Errorf("second row = %+v", got[1])
	}

	var args map[string]any
	if err := json.Unmarshal([]byte(got[0].args), &args); err != nil || args["query"] != "RETURN 1" {
		t.Errorf("arguments column = %q (err %v)", got[0].args, err)
	}
}

type echoInvoker struct{ calls int }

func (e *echoInvoker) Invoke(_ context.Context, name string, _ map[string]any) (json.RawMessage, error) {
	e.calls++
	return json.RawMessage(fmt.Sprintf("%q", name)), nil
}

func TestAuditedInvokerPassesThrough(t *testing.T) {
	log, err := NewAuditLog(t.TempDir())
	if err != nil {
		t.Fatalf("NewAuditLog: %v", err)
	}
	defer log.Close()

	inner := &echoInvoker{}
	audited := NewAuditedInvoker(inner, log)

	result, err := audited.Invoke(context.Background(), "get_neo4j_schema", nil)
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if string(result) != `"get_neo4j_schema"` {
		t.Errorf("result = %s", result)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d", inner.calls)
	}

	var count int
	if err := log.db.QueryRow(`SELECT COUNT(*) FROM tool_invocations`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("audit rows = %d, want 1", count)
	}
}
