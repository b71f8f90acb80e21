// Package storage keeps a local audit trail of tool invocations in SQLite.
// The log is write-only during a run; inspect it afterwards with any sqlite
// client. Nothing here feeds back into a conversation.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	globalconfig "noa/config"
)

type AuditLog struct {
	db    *sql.DB
	runID string
}

// NewAuditLog opens (or creates) audit.db in the data directory and starts a
// new run. Every recorded invocation carries the run id so interleaved runs
// stay distinguishable.
func NewAuditLog(dataDir string) (*AuditLog, error) {
	dbPath := filepath.Join(dataDir, "audit.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log := &AuditLog{db: db, runID: uuid.NewString()}

	if err := log.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return log, nil
}

func (a *AuditLog) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tool_invocations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		tool TEXT NOT NULL,
		arguments TEXT NOT NULL,
		outcome TEXT NOT NULL,
		error TEXT,
		duration_ms INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_tool_invocations_run ON tool_invocations(run_id);
	`

	_, err := a.db.Exec(schema)
	return err
}

// RunID identifies the current run.
func (a *AuditLog) RunID() string {
	return a.runID
}

// Record stores one invocation. Failures are logged and swallowed: auditing
// must never break a conversation.
func (a *AuditLog) Record(tool string, arguments map[string]any, invokeErr error, duration time.Duration) {
	argsJSON, err := json.Marshal(arguments)
	if err != nil {
		argsJSON = []byte("{}")
	}

	outcome := "ok"
	var errText sql.NullString
	if invokeErr != nil {
		outcome = "error"
		errText = sql.NullString{String: invokeErr.Error(), Valid: true}
	}

	_, err = a.db.Exec(
		`INSERT INTO tool_invocations (run_id, tool, arguments, outcome, error, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.runID, tool, string(argsJSON), outcome, errText, duration.Milliseconds(), time.Now().UTC(),
	)
	if err != nil && globalconfig.DebugLog != nil {
		globalconfig.DebugLog.Printf("[Audit] failed to record %s invocation: %v", tool, err)
	}
}

func (a *AuditLog) Close() error {
	return a.db.Close()
}
