package logger

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// stripANSI removes ANSI color codes from a string for testing
func stripANSI(str string) string {
	ansiRegex := regexp.MustCompile(`\x1b\[[0-9;]*m`)
	return ansiRegex.ReplaceAllString(str, "")
}

// The minimal encoder must never silently drop a field.
func TestMinimalEncoderNeverDiscardsFields(t *testing.T) {
	encoder := newMinimalEncoder(true)

	entry := zapcore.Entry{
		Level:      zapcore.InfoLevel,
		Time:       time.Now(),
		LoggerName: "pipeline",
		Message:    "Testing field preservation",
	}

	testFields := []struct {
		field    zapcore.Field
		mustFind string
	}{
		{zap.String(FieldPath, "summary.spdx"), "path=summary.spdx"},
		{zap.Int(FieldMetadataID, 7), "metadata_id=7"},
		{zap.String(FieldPattern, "src/*"), "pattern=src/*"},
		{zap.Bool("strict", true), "strict=true"},
		{zap.Float64("ratio", 0.8), "ratio=0.8"},
		{zap.Int64("int64_field", 9999999), "int64_field=9999999"},
		{zap.Strings(FieldPatterns, []string{"a/*", "b.c"}), "patterns="},
		{zap.String("field.with.dots", "test2"), "field.with.dots=test2"},
		{zap.Error(nil), ""}, // nil error must not crash
		{zap.Error(errors.New("boom")), "error=boom"},
	}

	var allFields []zapcore.Field
	for _, tf := range testFields {
		allFields = append(allFields, tf.field)
	}

	buf, err := encoder.EncodeEntry(entry, allFields)
	if err != nil {
		t.Fatalf("Failed to encode entry: %v", err)
	}
	cleanOutput := stripANSI(buf.String())

	for _, tf := range testFields {
		if tf.mustFind != "" && !strings.Contains(cleanOutput, tf.mustFind) {
			t.Errorf("field was discarded from log output: %s\noutput: %s", tf.mustFind, cleanOutput)
		}
	}
}

func TestMinimalEncoderLayout(t *testing.T) {
	encoder := newMinimalEncoder(false)
	ts := time.Date(2024, 5, 1, 13, 4, 35, 0, time.UTC)

	buf, err := encoder.EncodeEntry(zapcore.Entry{Level: zapcore.InfoLevel, Time: ts, LoggerName: "tree", Message: "built tree"},
		[]zapcore.Field{zap.Int(FieldCount, 3)})
	if err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}
	if got, want := buf.String(), "13:04:35  tree  built tree  count=3\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	buf, err = encoder.EncodeEntry(zapcore.Entry{Level: zapcore.WarnLevel, Time: ts, Message: "careful"}, nil)
	if err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}
	if got, want := buf.String(), "13:04:35  WARN  careful\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMinimalEncoderKeepsContextFields(t *testing.T) {
	var sb strings.Builder
	core := zapcore.NewCore(newMinimalEncoder(false), zapcore.AddSync(&sb), zapcore.DebugLevel)
	log := zap.New(core).Sugar().With(FieldComponent, "overrides", FieldStage, "load")

	log.Infow("loaded", FieldCount, 2)

	out := sb.String()
	for _, want := range []string{"component=overrides", "stage=load", "count=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
	if strings.Index(out, "component=") > strings.Index(out, "count=") {
		t.Errorf("context fields should precede entry fields: %q", out)
	}
}
