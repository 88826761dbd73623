package queue

import "github.com/voxatu/scribe/pkg/Logger"

// AsynqLogger adapts our zap-based logger to asynq's logging interface.
type AsynqLogger struct {
	logger *Logger.Logger
}

func (l *AsynqLogger) Debug(args ...interface{}) {
	l.logger.Debug(args...)
}

func (l *AsynqLogger) Info(args ...interface{}) {
	l.logger.Info(args...)
}

func (l *AsynqLogger) Warn(args ...interface{}) {
	l.logger.Warn(args...)
}

func (l *AsynqLogger) Error(args ...interface{}) {
	l.logger.Error(args...)
}

func (l *AsynqLogger) Fatal(args ...interface{}) {
	l.logger.Fatal(args...)
}
