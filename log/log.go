// Package log is the server's structured logger: a thin ILogger/IEvent
// facade (unchanged from the teacher's original shape, so call sites
// across the rest of the module never see zap directly) over a
// zapcore.Core, writing through a lumberjack.Logger
// when file rotation is wanted.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ILogger is the interface that wraps the basic logging methods.
type ILogger interface {
	Debug() IEvent
	Info() IEvent
	Warn() IEvent
	Error() IEvent
	Fatal() IEvent
	SetLevel(level Level)
	GetLevel() Level
}

// IEvent is the interface that wraps the basic event methods.
type IEvent interface {
	Err(err error) IEvent
	Msg(msg string)
	Msgf(format string, v ...interface{})
}

// LoggerConfig represents the configuration for a logger.
type LoggerConfig struct {
	Writer     io.Writer
	Level      Level
	TimeFormat string
	NoColor    bool
}

// DefaultLoggerConfig returns the default configuration for a logger.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Writer:     nil, // set to os.Stdout in New/NewWithConfig
		Level:      InfoLevel,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    false,
	}
}

// RotationConfig configures the lumberjack.Logger backing NewRotating.
type RotationConfig struct {
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
	Level      Level
}

// Level represents the log level
type Level int8

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

var levelNames = map[Level]string{
	DebugLevel: "DEBUG",
	InfoLevel:  "INFO",
	WarnLevel:  "WARN",
	ErrorLevel: "ERROR",
	FatalLevel: "FATAL",
}

// String returns the string representation of the log level
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", l)
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	case FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// Logger represents a logger instance, backed by a zapcore.Core built
// from the config it was constructed with. Fatal() never calls
// os.Exit: callers that want process termination on a fatal log do
// that themselves, the way the teacher's original Logger never tied
// logging to process lifetime either.
type Logger struct {
	writer     io.Writer
	level      Level
	timeFormat string
	noColor    bool

	mu   sync.Mutex
	core zapcore.Core
	atom zap.AtomicLevel
}

// Event represents a log event
type Event struct {
	logger *Logger
	level  Level
	err    error
}

func buildCore(cfg LoggerConfig) (zapcore.Core, zap.AtomicLevel) {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.LevelKey = "level"
	encCfg.MessageKey = "msg"
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(cfg.TimeFormat)
	if cfg.NoColor {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	} else {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	encoder := zapcore.NewConsoleEncoder(encCfg)
	atom := zap.NewAtomicLevelAt(cfg.Level.zapLevel())
	core := zapcore.NewCore(encoder, zapcore.AddSync(cfg.Writer), atom)
	return core, atom
}

// New creates a new logger with the given writer and level
func New(writer io.Writer, level Level) *Logger {
	cfg := DefaultLoggerConfig()
	cfg.Writer = writer
	cfg.Level = level
	return NewWithConfig(cfg)
}

// NewWithConfig creates a new logger with the given configuration
func NewWithConfig(config LoggerConfig) *Logger {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}
	core, atom := buildCore(config)
	return &Logger{
		writer:     config.Writer,
		level:      config.Level,
		timeFormat: config.TimeFormat,
		noColor:    config.NoColor,
		core:       core,
		atom:       atom,
	}
}

// NewRotating builds a Logger whose zapcore.WriteSyncer is a
// lumberjack.Logger, so long-running servers roll their access/error
// logs instead of growing one file forever.
func NewRotating(rc RotationConfig) *Logger {
	lj := &lumberjack.Logger{
		Filename:   rc.Filename,
		MaxSize:    rc.MaxSizeMB,
		MaxBackups: rc.MaxBackups,
		MaxAge:     rc.MaxAgeDays,
		Compress:   rc.Compress,
	}
	cfg := DefaultLoggerConfig()
	cfg.Writer = lj
	cfg.Level = rc.Level
	cfg.NoColor = true
	return NewWithConfig(cfg)
}

// SetLevel sets the log level
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	l.atom.SetLevel(level.zapLevel())
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// SetOutput swaps the logger's destination, rebuilding its core so the
// encoder settings (time format, color) carry over.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writer = w
	l.core, l.atom = buildCore(LoggerConfig{
		Writer:     w,
		Level:      l.level,
		TimeFormat: l.timeFormat,
		NoColor:    l.noColor,
	})
}

func (l *Logger) Debug() IEvent {
	if l.level > DebugLevel {
		return nil
	}
	return &Event{logger: l, level: DebugLevel}
}

func (l *Logger) Info() IEvent {
	if l.level > InfoLevel {
		return nil
	}
	return &Event{logger: l, level: InfoLevel}
}

func (l *Logger) Warn() IEvent {
	if l.level > WarnLevel {
		return nil
	}
	return &Event{logger: l, level: WarnLevel}
}

func (l *Logger) Error() IEvent {
	if l.level > ErrorLevel {
		return nil
	}
	return &Event{logger: l, level: ErrorLevel}
}

// Fatal always returns an event; logging through it does not exit the
// process (see Logger doc comment).
func (l *Logger) Fatal() IEvent {
	return &Event{logger: l, level: FatalLevel}
}

// Err adds an error to the event
func (e *Event) Err(err error) IEvent {
	if e == nil {
		return nil
	}
	e.err = err
	return e
}

func (e *Event) write(msg string) {
	l := e.logger
	l.mu.Lock()
	core := l.core
	l.mu.Unlock()

	var fields []zapcore.Field
	if e.err != nil {
		fields = append(fields, zap.Error(e.err))
	}

	ent := zapcore.Entry{Level: e.level.zapLevel(), Time: time.Now(), Message: msg}
	if ce := core.Check(ent, nil); ce != nil {
		ce.Write(fields...)
	}
}

// Msg logs a message
func (e *Event) Msg(msg string) {
	if e == nil {
		return
	}
	e.write(msg)
}

// Msgf logs a formatted message
func (e *Event) Msgf(format string, v ...interface{}) {
	if e == nil {
		return
	}
	e.write(fmt.Sprintf(format, v...))
}

// defaultLogger is the package-level logger Debug/Info/.../SetLevel/
// SetOutput operate on.
var defaultLogger = New(os.Stdout, InfoLevel)

func Debug() *Event {
	if event := defaultLogger.Debug(); event != nil {
		return event.(*Event)
	}
	return nil
}

func Info() *Event {
	if event := defaultLogger.Info(); event != nil {
		return event.(*Event)
	}
	return nil
}

func Warn() *Event {
	if event := defaultLogger.Warn(); event != nil {
		return event.(*Event)
	}
	return nil
}

func Error() *Event {
	if event := defaultLogger.Error(); event != nil {
		return event.(*Event)
	}
	return nil
}

func Fatal() *Event {
	if event := defaultLogger.Fatal(); event != nil {
		return event.(*Event)
	}
	return nil
}

// SetLevel sets the log level for the default logger
func SetLevel(level Level) {
	defaultLogger.SetLevel(level)
}

// SetOutput sets the output writer for the default logger
func SetOutput(w io.Writer) {
	defaultLogger.SetOutput(w)
}
