package app

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/prpercival/meal-share/internal/errs"
	"github.com/prpercival/meal-share/internal/session"
)

func TestLogging_Fields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core)
	user := uuid.Must(uuid.NewV4())
	ctx := session.WithUserID(context.Background(), user)

	h := logging(log, "ClaimMealPortion", handler[int](func(context.Context) (int, error) { return 7, nil }))
	v, err := h(ctx)
	if err != nil || v != 7 {
		t.Fatalf("unexpected result: %v, %v", v, err)
	}

	_, _ = logging(log, "ClaimMealPortion", handler[int](func(context.Context) (int, error) {
		return 0, errs.ErrSoldOut
	}))(ctx)
	_, _ = logging(log, "ClaimMealPortion", handler[int](func(context.Context) (int, error) {
		return 0, errors.New("disk on fire")
	}))(ctx)

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("want 3 entries, got %d", len(entries))
	}
	want := []struct {
		outcome string
		level   zapcore.Level
	}{
		{"ok", zapcore.InfoLevel},
		{"rejected", zapcore.InfoLevel},
		{"failed", zapcore.ErrorLevel},
	}
	for i, e := range entries {
		fields := e.ContextMap()
		if fields["op"] != "ClaimMealPortion" || fields["outcome"] != want[i].outcome || fields["user"] != user.String() {
			t.Fatalf("entry %d fields: %v", i, fields)
		}
		if e.Level != want[i].level {
			t.Fatalf("entry %d level: %v", i, e.Level)
		}
	}
}

func TestRecovering_CatchesPanic(t *testing.T) {
	t.Parallel()

	h := recovering(zaptest.NewLogger(t), "Panic", handler[string](func(context.Context) (string, error) {
		panic("oh no")
	}))
	v, err := h(context.Background())
	if !errors.Is(err, errInternal) || v != "" {
		t.Fatalf("want errInternal and zero value, got %q, %v", v, err)
	}
}

func TestRecovering_NoPanicPassThrough(t *testing.T) {
	t.Parallel()

	h := recovering(zaptest.NewLogger(t), "Ok", handler[int](func(context.Context) (int, error) { return 42, nil }))
	v, err := h(context.Background())
	if err != nil || v != 42 {
		t.Fatalf("unexpected result: %v, %v", v, err)
	}
}

func TestNoticeFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		kind NoticeKind
	}{
		{errs.ErrSoldOut, NoticeError},
		{errs.ErrAlreadyClaimed, NoticeInfo},
		{errs.ErrNotFound, NoticeError},
		{errs.ErrInvalidInput, NoticeError},
		{errs.ErrNoSession, NoticeError},
		{errInternal, NoticeError},
	}
	for _, tc := range cases {
		n := noticeFor(tc.err)
		if n.Kind != tc.kind || n.Text == "" {
			t.Fatalf("%v: got %+v", tc.err, n)
		}
	}
	if noticeFor(errs.ErrSoldOut).Text == noticeFor(errInternal).Text {
		t.Fatalf("sold out should have its own message")
	}
}
