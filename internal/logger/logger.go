package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New takes in a package name to tag the new logger with. Development output
// is used when MODE=development or debug is set.
func New(pkg string, debug bool) *zap.Logger {
	var l *zap.Logger
	var err error
	if debug || os.Getenv("MODE") == "development" {
		zapConfig := zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		l, err = zapConfig.Build()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}

	return l.With(zap.String("package", pkg))
}
