package logger_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/gradebook/pkg/logger"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized logger", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("When fetching the global logger", func() {
			log := logger.Get()

			Convey("Then it accepts all levels and field kinds", func() {
				ctx := context.Background()
				So(func() {
					log.Debug(ctx, "debug line", logger.String("k", "v"))
					log.Info(ctx, "info line", logger.Int("count", 3))
					log.Warn(ctx, "warn line", logger.Float64("score", 91.5))
					log.Error(ctx, "error line", logger.Error(errors.New("boom")), logger.Any("extra", []int{1, 2}))
				}, ShouldNotPanic)
			})
		})

		Convey("When deriving a named logger", func() {
			named := logger.Named("seeder")

			Convey("Then it logs without panicking", func() {
				So(func() {
					named.Info(context.Background(), "scoped line")
				}, ShouldNotPanic)
			})
		})

		Convey("When setting levels from strings", func() {
			Convey("Then known names parse", func() {
				So(logger.SetLevelString("debug"), ShouldBeNil)
				So(logger.SetLevelString("INFO"), ShouldBeNil)
				So(logger.SetLevelString("warning"), ShouldBeNil)
				So(logger.SetLevelString("error"), ShouldBeNil)
				So(logger.SetLevelString(""), ShouldBeNil)
			})

			Convey("And unknown names fail", func() {
				So(logger.SetLevelString("loud"), ShouldNotBeNil)
			})

			Convey("And the typed setter is accepted directly", func() {
				So(func() { logger.SetLevel(slog.LevelInfo) }, ShouldNotPanic)
			})
		})
	})
}
