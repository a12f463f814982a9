package log

import (
	contextPkg "FaceGeometry/pkg/context"
	"context"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	os.Exit(m.Run())
}

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected logrus.Level
	}{
		{name: "unset", value: "", expected: logrus.DebugLevel},
		{name: "warn", value: "warn", expected: logrus.WarnLevel},
		{name: "garbage", value: "loud", expected: logrus.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.value)
			if got := levelFromEnv(); got != tt.expected {
				t.Errorf("levelFromEnv() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestErrorWithTraceIDUsesRequestID(t *testing.T) {
	got := ErrorWithTraceID(Fields{"request_id": "01HZX"}, "boom")
	if got != "01HZX" {
		t.Errorf("ErrorWithTraceID() = %q, want request id", got)
	}

	if generated := ErrorWithTraceID(nil, "boom"); generated == "" || generated == "unknown" {
		t.Errorf("ErrorWithTraceID() = %q, want generated uuid", generated)
	}
}

func TestWithRequestID(t *testing.T) {
	ctx := contextPkg.WithRequestID(context.Background(), "req-1")
	entry := WithRequestID(ctx)
	if entry.Data["request_id"] != "req-1" {
		t.Errorf("request_id = %v, want req-1", entry.Data["request_id"])
	}
}
