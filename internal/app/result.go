package app

import (
	"errors"

	"github.com/prpercival/meal-share/internal/errs"
)

// NoticeKind is how the UI should present a notice.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
	NoticeInfo    NoticeKind = "info"
)

// Notice is a user-facing message.
type Notice struct {
	Kind NoticeKind
	Text string
}

// Result is the outcome of a mutation. Value is the zero value unless Success.
type Result[T any] struct {
	Value   T
	Success bool
	Notice  Notice
}

func ok[T any](v T, text string) Result[T] {
	return Result[T]{Value: v, Success: true, Notice: Notice{Kind: NoticeSuccess, Text: text}}
}

func failed[T any](err error) Result[T] {
	return Result[T]{Notice: noticeFor(err)}
}

// noticeFor maps service errors onto the message shown to the user.
func noticeFor(err error) Notice {
	switch {
	case errors.Is(err, errs.ErrSoldOut):
		return Notice{Kind: NoticeError, Text: "Sorry, this meal is sold out."}
	case errors.Is(err, errs.ErrAlreadyClaimed):
		return Notice{Kind: NoticeInfo, Text: "You already claimed a portion of this meal."}
	case errors.Is(err, errs.ErrNotFound):
		return Notice{Kind: NoticeError, Text: "That item is no longer available."}
	case errors.Is(err, errs.ErrInvalidInput):
		return Notice{Kind: NoticeError, Text: "Please check the values you entered."}
	case errors.Is(err, errs.ErrNoSession):
		return Notice{Kind: NoticeError, Text: "Please sign in first."}
	default:
		return Notice{Kind: NoticeError, Text: "Something went wrong. Please try again."}
	}
}

// expected reports whether err is a business outcome rather than a fault.
func expected(err error) bool {
	return errors.Is(err, errs.ErrSoldOut) ||
		errors.Is(err, errs.ErrAlreadyClaimed) ||
		errors.Is(err, errs.ErrNotFound) ||
		errors.Is(err, errs.ErrInvalidInput) ||
		errors.Is(err, errs.ErrNoSession)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case expected(err):
		return "rejected"
	default:
		return "failed"
	}
}
