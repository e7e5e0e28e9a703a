package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	L       *zap.Logger
	S       *zap.SugaredLogger
	logFile *os.File
)

// Options select the level and encoding of the log file.
type Options struct {
	Debug bool
	// Channel writes JSON lines and tags entries with mode=channel. Stdout
	// belongs to the method channel in that mode, so logs only go to the file.
	Channel bool
}

func (o Options) mode() string {
	if o.Channel {
		return "channel"
	}
	return "terminal"
}

// Init installs a logger writing to the richfield log file, see logPath.
func Init(opts Options) error {
	path, err := logPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	logFile, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	level := zapcore.InfoLevel
	if opts.Debug {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(newEncoder(opts.Channel), zapcore.AddSync(logFile), level)
	Use(zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Fields(zap.String("mode", opts.mode()), zap.Int("pid", os.Getpid())),
	))
	App.Info("logger initialized", "path", path, "debug", opts.Debug)
	return nil
}

func newEncoder(json bool) zapcore.Encoder {
	cfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "subsystem",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if json {
		cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		return zapcore.NewJSONEncoder(cfg)
	}
	return zapcore.NewConsoleEncoder(cfg)
}

// Use installs an existing logger, e.g. zap.NewNop() or an observer in tests.
func Use(l *zap.Logger) {
	L = l
	S = l.Sugar()
}

// Close flushes and closes the log file.
func Close() {
	if L != nil {
		_ = L.Sync()
	}
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// logPath resolves RICHFIELD_LOG_FILE, then RICHFIELD_CONFIG_HOME, then the
// XDG config directory, then ~/.config/richfield.
func logPath() (string, error) {
	if v := os.Getenv("RICHFIELD_LOG_FILE"); v != "" {
		return v, nil
	}
	if v := os.Getenv("RICHFIELD_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "richfield.log"), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "richfield", "richfield.log"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "richfield", "richfield.log"), nil
}

// Subsystem is a named child of the installed logger. The lookup happens on
// every call, so package-level subsystems follow later Init and Use calls.
// Nothing is logged before a logger is installed.
type Subsystem string

const (
	App     Subsystem = "app"
	Field   Subsystem = "textfield"
	Channel Subsystem = "channel"
	Editor  Subsystem = "editor"
)

func (s Subsystem) logger() *zap.Logger {
	if L == nil {
		return nil
	}
	return L.Named(string(s)).WithOptions(zap.AddCallerSkip(1))
}

func (s Subsystem) sugar() *zap.SugaredLogger {
	if l := s.logger(); l != nil {
		return l.Sugar()
	}
	return nil
}

func (s Subsystem) Debug(msg string, keysAndValues ...any) {
	if l := s.sugar(); l != nil {
		l.Debugw(msg, keysAndValues...)
	}
}

func (s Subsystem) Info(msg string, keysAndValues ...any) {
	if l := s.sugar(); l != nil {
		l.Infow(msg, keysAndValues...)
	}
}

func (s Subsystem) Warn(msg string, keysAndValues ...any) {
	if l := s.sugar(); l != nil {
		l.Warnw(msg, keysAndValues...)
	}
}

func (s Subsystem) Error(msg string, keysAndValues ...any) {
	if l := s.sugar(); l != nil {
		l.Errorw(msg, keysAndValues...)
	}
}

// Decision records the policy verdict for an edit of length code units at
// location carrying inserted code units of new text.
func (s Subsystem) Decision(verdict, reason string, location, length, inserted int) {
	l := s.logger()
	if l == nil {
		return
	}
	if ce := l.Check(zapcore.DebugLevel, "edit decided"); ce != nil {
		ce.Write(
			zap.String("verdict", verdict),
			zap.String("reason", reason),
			zap.Int("location", location),
			zap.Int("length", length),
			zap.Int("inserted", inserted),
		)
	}
}

// Call records one handled channel call. Failed calls log at warn level.
func (s Subsystem) Call(method string, replied bool, err error) {
	l := s.logger()
	if l == nil {
		return
	}
	fields := []zap.Field{zap.String("method", method), zap.Bool("replied", replied)}
	if err != nil {
		l.Warn("call failed", append(fields, zap.Error(err))...)
		return
	}
	if ce := l.Check(zapcore.DebugLevel, "call handled"); ce != nil {
		ce.Write(fields...)
	}
}
