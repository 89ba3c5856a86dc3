package staticcmd

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-blog/internal/generator"
	"github.com/google/uuid"
)

type stubService struct {
	buildOpts *generator.BuildOptions
	result    *generator.BuildResult
	buildErr  error
	cleaned   bool
}

func (s *stubService) Build(ctx context.Context, opts generator.BuildOptions) (*generator.BuildResult, error) {
	s.buildOpts = &opts
	return s.result, s.buildErr
}

func (s *stubService) Clean(ctx context.Context) error {
	s.cleaned = true
	return nil
}

func TestBuildSiteHandlerInvokesService(t *testing.T) {
	svc := &stubService{result: &generator.BuildResult{PagesBuilt: 4}}
	handler := NewBuildSiteHandler(svc, nil)

	var envelope ResultEnvelope
	cmd := BuildSiteCommand{
		DryRun:  true,
		Workers: 2,
		ResultCallback: func(e ResultEnvelope) {
			envelope = e
		},
	}

	if err := handler.Execute(context.Background(), cmd); err != nil {
		t.Fatalf("expected build to succeed, got %v", err)
	}
	if svc.buildOpts == nil {
		t.Fatal("expected service to be invoked")
	}
	if !svc.buildOpts.DryRun {
		t.Fatal("expected dry run to pass through")
	}
	if svc.buildOpts.Workers != 2 {
		t.Fatalf("expected worker override 2, got %d", svc.buildOpts.Workers)
	}
	if envelope.Result == nil || envelope.Result.PagesBuilt != 4 {
		t.Fatalf("expected callback to receive build result, got %+v", envelope.Result)
	}
	if envelope.BuildID == uuid.Nil {
		t.Fatal("expected a build identifier")
	}
}

func TestBuildSiteHandlerPropagatesBuildError(t *testing.T) {
	buildErr := errors.New("render failed")
	svc := &stubService{buildErr: buildErr}
	handler := NewBuildSiteHandler(svc, nil)

	callbackRan := false
	err := handler.Execute(context.Background(), BuildSiteCommand{
		ResultCallback: func(ResultEnvelope) { callbackRan = true },
	})
	if err == nil {
		t.Fatal("expected build error")
	}
	if !errors.Is(err, buildErr) {
		t.Fatalf("expected cause to survive wrapping, got %v", err)
	}
	if !callbackRan {
		t.Fatal("expected callback to run even on failure")
	}
}

func TestBuildSiteCommandValidation(t *testing.T) {
	if err := (BuildSiteCommand{Workers: 8}).Validate(); err != nil {
		t.Fatalf("expected valid command, got %v", err)
	}
	if err := (BuildSiteCommand{Workers: maxWorkers + 1}).Validate(); err == nil {
		t.Fatal("expected worker count above limit to be rejected")
	}
	if err := (BuildSiteCommand{Workers: -1}).Validate(); err == nil {
		t.Fatal("expected negative worker count to be rejected")
	}
}

func TestBuildSiteHandlerRejectsInvalidMessage(t *testing.T) {
	svc := &stubService{}
	handler := NewBuildSiteHandler(svc, nil)

	err := handler.Execute(context.Background(), BuildSiteCommand{Workers: maxWorkers + 1})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if svc.buildOpts != nil {
		t.Fatal("expected service not to run for invalid message")
	}
}

func TestCleanSiteHandlerInvokesService(t *testing.T) {
	svc := &stubService{}
	handler := NewCleanSiteHandler(svc, nil)

	if err := handler.Execute(context.Background(), CleanSiteCommand{}); err != nil {
		t.Fatalf("expected clean to succeed, got %v", err)
	}
	if !svc.cleaned {
		t.Fatal("expected clean to reach the service")
	}
}

func TestHandlersRequireService(t *testing.T) {
	build := NewBuildSiteHandler(nil, nil)
	if err := build.Execute(context.Background(), BuildSiteCommand{}); err == nil {
		t.Fatal("expected error without a generator service")
	}

	clean := NewCleanSiteHandler(nil, nil)
	if err := clean.Execute(context.Background(), CleanSiteCommand{}); err == nil {
		t.Fatal("expected error without a generator service")
	}
}
