package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TraceLevel sits one step below zap's DEBUG.
const TraceLevel = zapcore.DebugLevel - 1

var (
	zapLog   *zap.Logger
	logLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

func InitLogger(level zapcore.Level) error {

	config := zap.NewDevelopmentConfig()
	logLevel.SetLevel(level)
	config.Level = logLevel

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("Jan _2 15:04:05.000000000")
	encoderConfig.EncodeLevel = encodeLevel
	encoderConfig.StacktraceKey = "" // to hide stacktrace info
	config.EncoderConfig = encoderConfig
	config.OutputPaths = []string{"stderr"}

	var err error
	zapLog, err = config.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	return nil
}

// SetLevel changes the level of the running logger.
func SetLevel(level zapcore.Level) {
	logLevel.SetLevel(level)
}

func Level() zapcore.Level {
	return logLevel.Level()
}

func encodeLevel(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if l == TraceLevel {
		enc.AppendString("TRACE")
		return
	}
	zapcore.CapitalLevelEncoder(l, enc)
}

func Trace(message string, fields ...zap.Field) {
	if ce := zapLog.Check(TraceLevel, message); ce != nil {
		ce.Write(fields...)
	}
}

func Info(message string, fields ...zap.Field) {
	zapLog.Info(message, fields...)
}

func Warn(message string, fields ...zap.Field) {
	zapLog.Warn(message, fields...)
}

func Debug(message string, fields ...zap.Field) {
	zapLog.Debug(message, fields...)
}

// Sync flushes any buffered log entries
func Sync() error {
	return zapLog.Sync()
}
