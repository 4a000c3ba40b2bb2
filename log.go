package multisig

import (
	"io"
	"os"

	"github.com/go-kit/kit/log"
	lvl "github.com/go-kit/kit/log/level"
)

// Logger is a interface that can log to different levels. A Multisig calls
// these methods with key-value pairs as in structured logging framework do.
type Logger interface {
	Info(keyvals ...interface{})
	Debug(keyvals ...interface{})
	Warn(keyvals ...interface{})
	Error(keyvals ...interface{})
	// With returns a new Logger that inserts the given key value pairs for each
	// statements at each levels
	With(keyvals ...interface{}) Logger
}

// DefaultLevel is the default level where statements are logged. One can change
// this variable inside init() to change the default level, or construct
// explicitly a Logger.
var DefaultLevel = lvl.AllowInfo()

// DefaultLogger is the default logger that only outputs statements at the
// default level, on stderr.
var DefaultLogger = NewKitLogger(os.Stderr, DefaultLevel)

// NopLogger discards every statement.
var NopLogger Logger = NewKitLoggerFrom(log.NewNopLogger())

type kitLogger struct {
	log.Logger
}

// NewKitLoggerFrom returns a Logger out of a go-kit/kit/log logger interface.
// The caller can set the options that it needs to the logger first. It wraps
// the logger with a SyncLogger since a Multisig can be verified concurrently.
func NewKitLoggerFrom(l log.Logger) Logger {
	return &kitLogger{log.NewSyncLogger(l)}
}

// callerDepth skips the go-kit context and sync loggers and the kitLogger
// method, so the caller is the code calling Info, Debug, Warn or Error.
const callerDepth = 6

// NewKitLogger returns a Logger based on go-kit/kit/log logfmt logger that
// outputs to w. You can pass in options to only allow certain levels. It also
// includes the caller.
func NewKitLogger(w io.Writer, opts ...lvl.Option) Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	for _, opt := range opts {
		logger = lvl.NewFilter(logger, opt)
	}
	logger = log.With(logger, "call", log.Caller(callerDepth))
	return NewKitLoggerFrom(logger)
}

func (k *kitLogger) Info(kv ...interface{}) {
	lvl.Info(k.Logger).Log(kv...)
}

func (k *kitLogger) Debug(kv ...interface{}) {
	lvl.Debug(k.Logger).Log(kv...)
}

func (k *kitLogger) Warn(kv ...interface{}) {
	lvl.Warn(k.Logger).Log(kv...)
}

func (k *kitLogger) Error(kv ...interface{}) {
	lvl.Error(k.Logger).Log(kv...)
}

func (k *kitLogger) With(kv ...interface{}) Logger {
	// contexts merge with each other, the SyncLogger underneath is kept
	return &kitLogger{log.With(k.Logger, kv...)}
}
