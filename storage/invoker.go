package storage

import (
	"context"
	"encoding/json"
	"time"
)

// Invoker matches the tool-execution contract the agent loop uses.
type Invoker interface {
	Invoke(ctx context.Context, name string, arguments map[string]any) (json.RawMessage, error)
}

// AuditedInvoker decorates an Invoker, recording every call in the audit log
// before passing the outcome through untouched.
type AuditedInvoker struct {
	inner Invoker
	log   *AuditLog
}

func NewAuditedInvoker(inner Invoker, log *AuditLog) *AuditedInvoker {
	return &AuditedInvoker{inner: inner, log: log}
}

func (a *AuditedInvoker) Invoke(ctx context.Context, name string, arguments map[string]any) (json.RawMessage, error) {
	start := time.Now()
	result, err := a.inner.Invoke(ctx, name, arguments)
	a.log.Record(name, arguments, err, time.Since(start))
	return result, err
}
