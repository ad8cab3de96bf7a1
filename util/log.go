// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// AppName is reported on every log line
const AppName = "bf-satmeta"

// Severity is the severity attached to audit messages
type Severity string

// Audit severities
const (
	INFO  Severity = "Info"
	ALERT Severity = "Alert"
	ERROR Severity = "Error"
)

// LogContext provides the identifying fields written with every log line
type LogContext interface {
	AppName() string
	SessionID() string
	LogRootDir() string
}

// BasicLogContext is a LogContext with a lazily generated session ID
type BasicLogContext struct {
	sessionID string
}

// AppName implements LogContext
func (c *BasicLogContext) AppName() string {
	return AppName
}

// SessionID implements LogContext
func (c *BasicLogContext) SessionID() string {
	if c.sessionID == "" {
		c.sessionID, _ = PsuUUID()
	}
	return c.sessionID
}

// LogRootDir implements LogContext
func (c *BasicLogContext) LogRootDir() string {
	return ""
}

// LogAuditInput describes an auditable action
type LogAuditInput struct {
	Actor    string
	Action   string
	Actee    string
	Message  string
	Severity Severity
}

var (
	loggerMu   sync.RWMutex
	rootLogger = newLogger(os.Stderr, os.Getenv(SATMETA_LOG_LEVEL))
)

func newLogger(w io.Writer, lvl string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, levelOption(lvl))
	return log.With(logger, "ts", log.DefaultTimestampUTC)
}

func levelOption(lvl string) level.Option {
	switch strings.ToLower(lvl) {
	case "debug":
		return level.AllowDebug()
	case "warn", "alert":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}

// SetLogOutput redirects all logging to w, filtered at the given level
func SetLogOutput(w io.Writer, lvl string) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	rootLogger = newLogger(w, lvl)
}

func contextLogger(ctx LogContext) log.Logger {
	loggerMu.RLock()
	logger := rootLogger
	loggerMu.RUnlock()
	if ctx == nil {
		return log.With(logger, "app", AppName)
	}
	return log.With(logger, "app", ctx.AppName(), "session", ctx.SessionID())
}

// LogInfo writes an informational message
func LogInfo(ctx LogContext, message string) {
	_ = level.Info(contextLogger(ctx)).Log("msg", message)
}

// LogDebug writes a debug message; hidden unless SATMETA_LOG_LEVEL=debug
func LogDebug(ctx LogContext, message string) {
	_ = level.Debug(contextLogger(ctx)).Log("msg", message)
}

// LogAlert writes a warning that does not interrupt processing
func LogAlert(ctx LogContext, message string) {
	_ = level.Warn(contextLogger(ctx)).Log("msg", message)
}

// LogSimpleErr writes an error together with a message
func LogSimpleErr(ctx LogContext, message string, err error) {
	_ = level.Error(contextLogger(ctx)).Log("msg", message, "err", err)
}

// LogAudit writes an audit record
func LogAudit(ctx LogContext, input LogAuditInput) {
	logger := contextLogger(ctx)
	switch input.Severity {
	case ERROR:
		logger = level.Error(logger)
	case ALERT:
		logger = level.Warn(logger)
	default:
		logger = level.Info(logger)
	}
	_ = logger.Log(
		"audit", true,
		"actor", input.Actor,
		"action", input.Action,
		"actee", input.Actee,
		"msg", input.Message,
		"severity", string(input.Severity),
	)
}
