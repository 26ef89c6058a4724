package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStringFieldsSkipsBlanks(t *testing.T) {
	fields := StringFields(
		StringField{Key: "  search_id ", Value: " abc "},
		StringField{Key: "outreach_type", Value: "   "},
		StringField{Key: "", Value: "orphan"},
	)

	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}
	if fields[0].Key != "search_id" || fields[0].String != "abc" {
		t.Fatalf("unexpected field: %+v", fields[0])
	}
}

func TestSearchFieldsAttachToEntries(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	log := WithFields(zap.New(core), SearchFields("id-1", "recruiting")...)
	log.Info("search finished")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx[FieldSearchID] != "id-1" {
		t.Fatalf("expected search id, got %v", ctx[FieldSearchID])
	}
	if ctx[FieldOutreachType] != "recruiting" {
		t.Fatalf("expected outreach type, got %v", ctx[FieldOutreachType])
	}
}

func TestProviderFieldsOmitsMissingModel(t *testing.T) {
	fields := ProviderFields("pdl", "")
	if len(fields) != 1 || fields[0].Key != FieldProvider {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestWithFieldsNilLogger(t *testing.T) {
	log := WithFields(nil, zap.String("k", "v"))
	if log == nil {
		t.Fatalf("expected fallback logger when nil provided")
	}
	// Must not panic.
	log.Info("noop")

	if got := WithFields(log); got != log {
		t.Fatalf("expected the same logger when no fields are given")
	}
}

func TestNewLevels(t *testing.T) {
	log, err := New(true, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if log.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("debug must be disabled by default")
	}

	log, err = New(false, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("debug must be enabled with debug flag")
	}
}
