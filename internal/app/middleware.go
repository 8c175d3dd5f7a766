package app

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"go.uber.org/zap"

	"github.com/prpercival/meal-share/internal/session"
)

// errInternal replaces a recovered panic.
var errInternal = errors.New("internal")

// handler is one facade call.
type handler[T any] func(ctx context.Context) (T, error)

// logging records op, outcome, duration and user of every call. No payloads.
func logging[T any](log *zap.Logger, op string, next handler[T]) handler[T] {
	return func(ctx context.Context) (T, error) {
		start := time.Now()
		v, err := next(ctx)
		user, _ := session.UserIDFromCtx(ctx)
		fields := []zap.Field{
			zap.String("op", op),
			zap.String("outcome", outcome(err)),
			zap.Duration("dur", time.Since(start)),
			zap.Stringer("user", user),
		}
		if err != nil && !expected(err) {
			log.Error("call", append(fields, zap.Error(err))...)
			return v, err
		}
		log.Info("call", fields...)
		return v, err
	}
}

// recovering turns a panic inside next into errInternal.
func recovering[T any](log *zap.Logger, op string, next handler[T]) handler[T] {
	return func(ctx context.Context) (v T, err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic",
					zap.Any("reason", r),
					zap.ByteString("stack", debug.Stack()),
					zap.String("op", op),
				)
				var zero T
				v, err = zero, errInternal
			}
		}()
		return next(ctx)
	}
}

// chain applies logging outermost so a recovered panic is logged as a failure.
func chain[T any](log *zap.Logger, op string, h handler[T]) handler[T] {
	return logging(log, op, recovering(log, op, h))
}
