package tools

import (
	"github.com/d-kuro/peek-mcp/internal/logging"
)

// loggerAdapter wraps logging.Logger to implement the Logger interface.
type loggerAdapter struct {
	*logging.Logger
}

// AdaptLogger exposes a logging.Logger through the Logger interface.
func AdaptLogger(l *logging.Logger) Logger {
	return &loggerAdapter{Logger: l}
}

// WithTool implements Logger.
func (a *loggerAdapter) WithTool(toolName string) Logger {
	return &loggerAdapter{Logger: a.Logger.WithTool(toolName)}
}

// WithCall implements Logger.
func (a *loggerAdapter) WithCall(callID string) Logger {
	return &loggerAdapter{Logger: a.Logger.WithCall(callID)}
}
