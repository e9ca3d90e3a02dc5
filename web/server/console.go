package server

import (
	"fmt"
	"time"

	"github.com/pgadula/raytracing/pkg/core"
)

// ConsoleMessage is a log line forwarded to the browser console
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info" or "warning"
}

// WebLogger implements core.Logger for one render. Every message goes to the
// server log; info and warning messages are also queued for the client.
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
	server      core.Logger
}

// NewWebLogger creates a logger for the given render
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage, server core.Logger) *WebLogger {
	if server == nil {
		server = core.NopLogger{}
	}
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
		server:      server,
	}
}

// Debugf writes to the server log only; per-tile progress would flood the client
func (wl *WebLogger) Debugf(format string, args ...interface{}) {
	wl.server.Debugf("[%s] %s", wl.renderID, fmt.Sprintf(format, args...))
}

func (wl *WebLogger) Infof(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	wl.server.Infof("[%s] %s", wl.renderID, message)
	wl.send("info", message)
}

func (wl *WebLogger) Warningf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	wl.server.Warningf("[%s] %s", wl.renderID, message)
	wl.send("warning", message)
}

// send never blocks; messages are dropped when the client falls behind
func (wl *WebLogger) send(level, message string) {
	if wl.consoleChan == nil {
		return
	}
	select {
	case wl.consoleChan <- ConsoleMessage{
		RenderID:  wl.renderID,
		Message:   message,
		Timestamp: time.Now(),
		Level:     level,
	}:
	default:
	}
}
