package view

import (
	"bytes"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"colorlife/src/universe"
)

func TestConsoleOut(t *testing.T) {
	Convey("Given a console printer on a simulation", t, func() {
		o := universe.DefaultOptions
		o.Interval = time.Hour
		u := universe.NewSimulation(&o, nil)
		defer u.Close()

		var out bytes.Buffer
		c := &ConsoleOut{out: &out}
		u.RegisterViewer(c)
		c.Start()

		Convey("the configuration is printed on register", func() {
			So(out.String(), ShouldContainSubstring, "Dimension: 15 x 15")
			So(out.String(), ShouldContainSubstring, "Evaluation: inplace")
		})

		Convey("progress is printed every 10 generations while running", func() {
			u.Start()
			for i := 0; i < 20; i++ {
				u.Tick()
			}
			So(out.String(), ShouldContainSubstring, "Generations done: 10")
			So(out.String(), ShouldContainSubstring, "Generations done: 20")

			Convey("and a summary once paused", func() {
				u.Pause()
				u.Pause()
				So(out.String(), ShouldContainSubstring, "Last generation: 20")
				So(bytes.Count(out.Bytes(), []byte("Paused:")), ShouldEqual, 1)
			})
		})
	})
}
