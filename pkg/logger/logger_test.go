package logger

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestAddValuesToContext(t *testing.T) {
	ctx := AddValuesToContext(context.Background(), map[string]interface{}{"request_id": "abc"})
	ctx = AddValuesToContext(ctx, map[string]interface{}{"procedure": "artwork_details"})

	entry := Logger(ctx)
	assert.Equal(t, "abc", entry.Data["request_id"])
	assert.Equal(t, "artwork_details", entry.Data["procedure"])
}

func TestAddValuesToContext_DoesNotMutateParent(t *testing.T) {
	parent := AddValuesToContext(context.Background(), map[string]interface{}{"a": 1})
	_ = AddValuesToContext(parent, map[string]interface{}{"b": 2})

	entry := Logger(parent)
	assert.Equal(t, 1, entry.Data["a"])
	assert.NotContains(t, entry.Data, "b")
}

func TestLogger_EmptyContext(t *testing.T) {
	assert.Empty(t, Logger(context.Background()).Data)
}

func TestInit(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)
	defer logrus.SetFormatter(&logrus.TextFormatter{})

	Init(Options{Level: "DEBUG", Format: "json"})
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)

	Init(Options{Level: "nonsense", Format: "text"})
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logrus.StandardLogger().Formatter)
}
