package main

import (
	"context"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/prpercival/meal-share/internal/app"
	"github.com/prpercival/meal-share/internal/config"
	"github.com/prpercival/meal-share/internal/session"
)

func TestReport(t *testing.T) {
	log := zaptest.NewLogger(t)
	a, err := app.New(context.Background(), config.Default(), log)
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	ctx := session.WithUserID(context.Background(), a.DefaultUser())
	if err := report(ctx, a, log); err != nil {
		t.Fatalf("report: %v", err)
	}
	if err := report(context.Background(), a, log); err == nil {
		t.Fatalf("report without a session should fail")
	}
}
