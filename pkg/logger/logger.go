package logger

import (
	"context"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type ctxKey struct{}

// Options configures the process-wide logrus output.
type Options struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Init applies level and format to the standard logrus logger.
// Unknown levels fall back to info; format is either "json" or "text".
func Init(opts Options) {
	level, err := logrus.ParseLevel(strings.ToLower(opts.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stdout)

	if strings.EqualFold(opts.Format, "json") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// Logger returns an entry carrying the fields stored in ctx.
func Logger(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(logrus.StandardLogger())
	if ctx == nil {
		return entry
	}
	if fields, ok := ctx.Value(ctxKey{}).(logrus.Fields); ok {
		return entry.WithFields(fields)
	}
	return entry
}

// AddValuesToContext returns a copy of ctx whose logger carries values in
// addition to any fields already present.
func AddValuesToContext(ctx context.Context, values map[string]interface{}) context.Context {
	fields := logrus.Fields{}
	if existing, ok := ctx.Value(ctxKey{}).(logrus.Fields); ok {
		for k, v := range existing {
			fields[k] = v
		}
	}
	for k, v := range values {
		fields[k] = v
	}
	return context.WithValue(ctx, ctxKey{}, fields)
}
