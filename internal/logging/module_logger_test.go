package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

type recordingLogger struct {
	fields map[string]any
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithContext(context.Context) interfaces.Logger { return r }

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	merged := make(map[string]any, len(r.fields)+len(fields))
	for k, v := range r.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &recordingLogger{fields: merged}
}

type recordingProvider struct {
	logger *recordingLogger
	names  []string
}

func (p *recordingProvider) GetLogger(name string) interfaces.Logger {
	p.names = append(p.names, name)
	return p.logger
}

func TestModuleLoggerAttachesModuleField(t *testing.T) {
	provider := &recordingProvider{logger: &recordingLogger{}}

	logger := GeneratorLogger(provider)

	rec, ok := logger.(*recordingLogger)
	if !ok {
		t.Fatalf("expected recording logger, got %T", logger)
	}
	if rec.fields["module"] != "blog.generator" {
		t.Fatalf("expected module field, got %v", rec.fields)
	}
	if len(provider.names) != 1 || provider.names[0] != "blog.generator" {
		t.Fatalf("expected provider lookup by module name, got %v", provider.names)
	}
}

func TestModuleLoggerNilProvider(t *testing.T) {
	logger := ModuleLogger(nil, "blog.content")
	if logger == nil {
		t.Fatal("expected no-op logger, got nil")
	}
	logger.Info("should not panic")
}

func TestWithDocumentContextSkipsEmptyValues(t *testing.T) {
	base := &recordingLogger{}
	logger := WithDocumentContext(base, "posts/hello.md", "")

	rec := logger.(*recordingLogger)
	if rec.fields["document_path"] != "posts/hello.md" {
		t.Fatalf("expected document path field, got %v", rec.fields)
	}
	if _, ok := rec.fields["build_action"]; ok {
		t.Fatalf("empty action should be skipped, got %v", rec.fields)
	}
}

func TestContextFieldsRoundTrip(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"build": "full"})
	ctx = ContextWithFields(ctx, map[string]any{"pages": 3})

	fields := ContextFields(ctx)
	if fields["build"] != "full" || fields["pages"] != 3 {
		t.Fatalf("expected merged fields, got %v", fields)
	}

	fields["build"] = "mutated"
	if again := ContextFields(ctx); again["build"] != "full" {
		t.Fatalf("context fields should be copied, got %v", again)
	}
}
