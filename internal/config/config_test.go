package config_test

import (
	"context"
	"testing"

	"github.com/okian/ridequeue/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.ExportPath, convey.ShouldEqual, "carousel_ride_history.csv")
			convey.So(cfg.CycleDemoVisitors, convey.ShouldEqual, 10)
			convey.So(cfg.MetricsAddr, convey.ShouldBeEmpty)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given a valid config", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("When the export path is blank", func() {
			cfg.ExportPath = "  "

			convey.Convey("Then validation fails", func() {
				convey.So(cfg.Validate(), convey.ShouldWrap, config.ErrInvalidConfig)
			})
		})

		convey.Convey("When the cycle demo has no visitors", func() {
			cfg.CycleDemoVisitors = 0

			convey.Convey("Then validation fails", func() {
				convey.So(cfg.Validate(), convey.ShouldWrap, config.ErrInvalidConfig)
			})
		})

		convey.Convey("When the log format is unknown", func() {
			cfg.LogFormat = "xml"

			convey.Convey("Then validation fails", func() {
				convey.So(cfg.Validate(), convey.ShouldWrap, config.ErrInvalidConfig)
			})
		})

		convey.Convey("When the log level is unknown", func() {
			cfg.LogLevel = "loud"

			convey.Convey("Then validation fails", func() {
				convey.So(cfg.Validate(), convey.ShouldWrap, config.ErrInvalidConfig)
			})
		})

		convey.Convey("When the log settings use another case", func() {
			cfg.LogLevel = "WARN"
			cfg.LogFormat = "JSON"

			convey.Convey("Then validation passes", func() {
				convey.So(cfg.Validate(), convey.ShouldBeNil)
			})
		})
	})
}
