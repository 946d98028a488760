package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

const (
	FormatJSON    = "json"
	FormatPretty  = "pretty"
	FormatConsole = "console"
)

// Logger is a zerolog logger bound to a service name.
type Logger struct {
	zl      zerolog.Logger
	service string
}

// New builds a logger writing to cfg.Output.
func New(cfg *Config, serviceName string) *Logger {
	return NewWithWriter(cfg, serviceName, outputWriter(cfg.Output))
}

// NewWithWriter builds a logger writing to w. An unknown level means info.
func NewWithWriter(cfg *Config, serviceName string, w io.Writer) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var zl zerolog.Logger
	switch strings.ToLower(cfg.Format) {
	case FormatConsole, FormatPretty:
		zl = zerolog.New(consoleWriter(cfg, serviceName, w))
	default:
		zl = zerolog.New(w)
	}

	zc := zl.Level(level).With()
	if cfg.Timestamp {
		zc = zc.Timestamp()
	}
	if cfg.Caller {
		zc = zc.Caller()
	}
	if serviceName != "" {
		zc = zc.Str(FieldService, serviceName)
	}
	return &Logger{zl: zc.Logger(), service: serviceName}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func (l *Logger) derive(zc zerolog.Context) *Logger {
	return &Logger{zl: zc.Logger(), service: l.service}
}

// WithComponent tags every entry with component=name.
func (l *Logger) WithComponent(name string) *Logger {
	return l.derive(l.zl.With().Str(FieldComponent, name))
}

// WithFields adds fields to every entry.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return l.derive(l.zl.With().Fields(fields))
}

// WithError adds err as the error field.
func (l *Logger) WithError(err error) *Logger {
	return l.derive(l.zl.With().Err(err))
}

// WithContext adds the trace and span ids of the active span and the
// request id stored by ContextWithRequestID.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	zc := l.zl.With()
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		zc = zc.Str(FieldTraceID, sc.TraceID().String()).Str(FieldSpanID, sc.SpanID().String())
	}
	if id := RequestIDFromContext(ctx); id != "" {
		zc = zc.Str(FieldRequestID, id)
	}
	return l.derive(zc)
}

func (l *Logger) Debug(msg string, fields ...map[string]interface{}) { emit(l.zl.Debug(), msg, fields) }
func (l *Logger) Info(msg string, fields ...map[string]interface{})  { emit(l.zl.Info(), msg, fields) }
func (l *Logger) Warn(msg string, fields ...map[string]interface{})  { emit(l.zl.Warn(), msg, fields) }
func (l *Logger) Error(msg string, fields ...map[string]interface{}) { emit(l.zl.Error(), msg, fields) }

func emit(e *zerolog.Event, msg string, fields []map[string]interface{}) {
	for _, f := range fields {
		e = e.Fields(f)
	}
	e.Msg(msg)
}

type ctxKey struct{}

// ContextWithRequestID stores a request id that WithContext picks up.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestIDFromContext returns the id stored by ContextWithRequestID.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

var (
	globalMu     sync.RWMutex
	globalLogger *Logger
)

// Init replaces the global logger with one built from cfg.
func Init(cfg *Config) {
	cfg.ApplyDefaults()
	SetGlobalLogger(New(cfg, cfg.ServiceName))
}

func SetGlobalLogger(l *Logger) {
	globalMu.Lock()
	globalLogger = l
	globalMu.Unlock()
}

// GetGlobalLogger returns the logger set by Init, or an info-level
// console logger on stderr.
func GetGlobalLogger() *Logger {
	globalMu.RLock()
	l := globalLogger
	globalMu.RUnlock()
	if l != nil {
		return l
	}
	cfg := &Config{}
	cfg.ApplyDefaults()
	l = New(cfg, "")
	SetGlobalLogger(l)
	return l
}

func outputWriter(output string) io.Writer {
	if strings.EqualFold(output, "stdout") {
		return os.Stdout
	}
	return os.Stderr
}

type levelStyle struct {
	tag   string
	color string
}

var levelStyles = map[string]levelStyle{
	"trace": {"[TRC]", "\033[90m"},
	"debug": {"[DBG]", "\033[36m"},
	"info":  {"[INF]", "\033[32m"},
	"warn":  {"[WRN]", "\033[33m"},
	"error": {"[ERR]", "\033[31m"},
	"fatal": {"[FTL]", "\033[35m"},
}

// consoleWriter prints "15:04:05 [SVC][INF] message key:value".
func consoleWriter(cfg *Config, serviceName string, w io.Writer) zerolog.ConsoleWriter {
	prefix := ""
	if len(serviceName) >= 3 {
		prefix = "[" + strings.ToUpper(serviceName[:3]) + "]"
		if !cfg.NoColor {
			prefix = "\033[34m" + prefix + "\033[0m"
		}
	}
	return zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    cfg.NoColor,
		FormatLevel: func(i interface{}) string {
			lvl := fmt.Sprint(i)
			style, ok := levelStyles[lvl]
			if !ok {
				return prefix + "[" + strings.ToUpper(lvl) + "]"
			}
			if cfg.NoColor {
				return prefix + style.tag
			}
			return prefix + style.color + style.tag + "\033[0m"
		},
		FormatFieldName: func(i interface{}) string { return fmt.Sprint(i) + ":" },
	}
}
