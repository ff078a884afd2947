package commands

import (
	"context"
	"errors"
	"time"

	command "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// TelemetryStatus is the outcome of one command run.
type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo is handed to telemetry callbacks after each run. Error is the
// categorised error Execute returns.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Category returns the go-errors category of a failed run, or "" on success.
func (i TelemetryInfo) Category() goerrors.Category {
	var richErr *goerrors.Error
	if errors.As(i.Error, &richErr) {
		return richErr.Category
	}
	return ""
}

// Telemetry is invoked after every command run.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs command outcomes. Missing posts and malformed
// documents are logged as warnings since they are caller errors; everything
// else that fails is logged as an error.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	logger = logging.OrNoOp(logger)
	return func(_ context.Context, _ T, info TelemetryInfo) {
		entry := logging.WithFields(logger, info.Fields)
		if info.Status == TelemetryStatusSuccess {
			entry.Info("command.execute.success", "duration_ms", info.Duration.Milliseconds())
			return
		}

		args := []any{
			"duration_ms", info.Duration.Milliseconds(),
			"error", info.Error,
			"error_category", string(info.Category()),
		}
		var richErr *goerrors.Error
		if errors.As(info.Error, &richErr) && richErr.TextCode != "" {
			args = append(args, "error_code", richErr.TextCode)
		}

		msg := "command.execute." + string(info.Status)
		switch info.Category() {
		case goerrors.CategoryNotFound, goerrors.CategoryBadInput:
			entry.Warn(msg, args...)
		default:
			entry.Error(msg, args...)
		}
	}
}
