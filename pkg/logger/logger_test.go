package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}
}

func TestLoggerWriter(t *testing.T) {
	Convey("Given a logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		SetLevel(slog.LevelInfo)
		ctx := context.Background()

		Convey("When using the text format", func() {
			So(InitWithWriter(&buf, FormatText), ShouldBeNil)
			Get().Info(ctx, "visitor added", String("visitor", "Alice"), Int("queue", 1))

			Convey("Then the fields and caller are rendered", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "visitor added")
				So(out, ShouldContainSubstring, "visitor=Alice")
				So(out, ShouldContainSubstring, "queue=1")
				So(out, ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When using the json format", func() {
			So(InitWithWriter(&buf, FormatJSON), ShouldBeNil)
			Named("ride").Warn(ctx, "queue empty", Bool("ok", false), Any("riders", []string{"VIS1", "VIS2"}))

			Convey("Then a JSON object is written with the component", func() {
				out := buf.String()
				So(strings.HasPrefix(out, "{"), ShouldBeTrue)
				So(out, ShouldContainSubstring, `"component":"ride"`)
				So(out, ShouldContainSubstring, `"ok":false`)
				So(out, ShouldContainSubstring, `"riders":["VIS1","VIS2"]`)
			})
		})

		Convey("When the level filters a message", func() {
			So(InitWithWriter(&buf, FormatText), ShouldBeNil)
			So(SetLevelString("warn"), ShouldBeNil)
			Get().Info(ctx, "hidden")
			Get().Warn(ctx, "shown")
			SetLevel(slog.LevelInfo)

			Convey("Then only the enabled message is written", func() {
				So(buf.String(), ShouldNotContainSubstring, "hidden")
				So(buf.String(), ShouldContainSubstring, "shown")
			})
		})

		Convey("When the format is unknown", func() {
			err := InitWithWriter(&buf, "xml")

			Convey("Then an error is returned", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level strings", t, func() {
		for _, lvl := range []string{"debug", "info", "", "WARN", "warning", "error"} {
			So(SetLevelString(lvl), ShouldBeNil)
		}
		So(SetLevelString("loud"), ShouldNotBeNil)
		SetLevel(slog.LevelInfo)
	})
}

func TestNop(t *testing.T) {
	l := Nop()
	if l == nil {
		t.Fatal("nop logger is nil")
	}
	l.Error(context.Background(), "discarded", Error(nil))
}
