package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls the global logger built by Init.
type Options struct {
	Mode       string // "production" or "development"
	FileEnable bool
	Filename   string
}

// Init replaces the zap globals. Until it is called the zap no-op logger is in place.
func Init(opts Options) error {
	var zapConfig zap.Config
	if opts.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	var l *zap.Logger
	if opts.FileEnable && opts.Filename != "" {
		rotating := &lumberjack.Logger{
			Filename:   opts.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
		}
		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(rotating),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		l = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		var err error
		l, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			return err
		}
	}

	zap.ReplaceGlobals(l)
	return nil
}

func Sync() {
	_ = zap.L().Sync()
}

func Info(format string, v ...interface{}) {
	zap.S().Infof(format, v...)
}

func Error(format string, v ...interface{}) {
	zap.S().Errorf(format, v...)
}

func Debug(format string, v ...interface{}) {
	zap.S().Debugf(format, v...)
}

func Warn(format string, v ...interface{}) {
	zap.S().Warnf(format, v...)
}

// With returns a sugared logger carrying the given key/value pairs.
func With(keysAndValues ...interface{}) *zap.SugaredLogger {
	return zap.S().With(keysAndValues...)
}
