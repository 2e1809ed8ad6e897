package view

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	. "github.com/smartystreets/goconvey/convey"

	"colorlife/src/universe"
)

type testMessage struct {
	boardMessage
	Error string `json:"error"`
}

//readUntil reads messages until cond holds or the deadline passes
func readUntil(ws *websocket.Conn, cond func(m testMessage) bool) (testMessage, error) {
	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var m testMessage
		_, data, err := ws.ReadMessage()
		if err != nil {
			return m, err
		}
		if err = json.Unmarshal(data, &m); err != nil {
			return m, err
		}
		if cond(m) {
			return m, nil
		}
	}
}

func cellOf(m testMessage, row int, col int) cellMessage {
	for _, c := range m.Cells {
		if c.Row == row && c.Col == col {
			return c
		}
	}
	return cellMessage{}
}

func TestWebView(t *testing.T) {
	Convey("Given a web board on a simulation", t, func() {
		o := universe.DefaultOptions
		o.Interval = time.Hour
		u := universe.NewSimulation(&o, nil)
		defer u.Close()
		w := NewWebView("")
		u.RegisterViewer(w)

		srv := httptest.NewServer(w.Handler())
		defer srv.Close()

		Convey("the page has a color input per cell", func() {
			resp, err := http.Get(srv.URL + "/")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(strings.Count(string(body), `type="color"`), ShouldEqual, universe.Size*universe.Size)
			So(string(body), ShouldContainSubstring, `data-row="15" data-col="15"`)
		})

		Convey("unknown pages are not found and health is ok", func() {
			resp, err := http.Get(srv.URL + "/nope")
			So(err, ShouldBeNil)
			resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)

			resp, err = http.Get(srv.URL + "/health")
			So(err, ShouldBeNil)
			resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
		})

		Convey("a websocket client", func() {
			ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
			So(err, ShouldBeNil)
			defer ws.Close()

			Convey("gets the board right away", func() {
				m, err := readUntil(ws, func(m testMessage) bool { return m.Type == "board" })
				So(err, ShouldBeNil)
				So(m.Cells, ShouldHaveLength, universe.Size*universe.Size)
				So(m.Mode, ShouldEqual, "stopped")
				So(cellOf(m, 1, 1).Color, ShouldEqual, "#ffffff")
			})

			Convey("can paint a cell", func() {
				So(ws.WriteJSON(commandMessage{Type: "setColor", Row: 3, Col: 4, Color: "#FF0000"}), ShouldBeNil)
				m, err := readUntil(ws, func(m testMessage) bool { return cellOf(m, 3, 4).Alive })
				So(err, ShouldBeNil)
				So(cellOf(m, 3, 4).Color, ShouldEqual, "#ff0000")
				So(cellOf(m, 3, 4).Opacity, ShouldEqual, 0.1)
				So(m.LiveCells, ShouldEqual, 1)

				b := u.Board()
				c, _ := b.Get(3, 4)
				So(c.Alive, ShouldBeTrue)

				Convey("and advance a generation", func() {
					So(ws.WriteJSON(commandMessage{Type: "tick"}), ShouldBeNil)
					m, err := readUntil(ws, func(m testMessage) bool { return m.Generation == 1 })
					So(err, ShouldBeNil)
					So(cellOf(m, 3, 4).Alive, ShouldBeFalse)
				})
			})

			Convey("can start, pause and clear the clock", func() {
				So(ws.WriteJSON(commandMessage{Type: "start"}), ShouldBeNil)
				_, err := readUntil(ws, func(m testMessage) bool { return m.Mode == "running" })
				So(err, ShouldBeNil)
				So(ws.WriteJSON(commandMessage{Type: "pause"}), ShouldBeNil)
				_, err = readUntil(ws, func(m testMessage) bool { return m.Mode == "paused" })
				So(err, ShouldBeNil)
				So(ws.WriteJSON(commandMessage{Type: "clear"}), ShouldBeNil)
				_, err = readUntil(ws, func(m testMessage) bool { return m.Mode == "stopped" })
				So(err, ShouldBeNil)
				So(u.Status().RunningMode, ShouldEqual, universe.ModeStopped)
			})

			Convey("gets an error for bad commands", func() {
				So(ws.WriteJSON(commandMessage{Type: "jump"}), ShouldBeNil)
				m, err := readUntil(ws, func(m testMessage) bool { return m.Type == "error" })
				So(err, ShouldBeNil)
				So(m.Error, ShouldContainSubstring, "unknown command")

				So(ws.WriteJSON(commandMessage{Type: "setColor", Row: 1, Col: 1, Color: "red"}), ShouldBeNil)
				m, err = readUntil(ws, func(m testMessage) bool { return m.Type == "error" })
				So(err, ShouldBeNil)
				So(m.Error, ShouldContainSubstring, "invalid color")
			})
		})
	})
}

func TestWebViewStop(t *testing.T) {
	Convey("Given a started web board", t, func() {
		w := NewWebView("127.0.0.1:0")
		done := make(chan struct{})
		go func() {
			w.Start()
			close(done)
		}()
		time.Sleep(20 * time.Millisecond)

		Convey("stop makes start return", func() {
			w.Stop()
			returned := false
			select {
			case <-done:
				returned = true
			case <-time.After(2 * time.Second):
			}
			So(returned, ShouldBeTrue)
		})
	})
}

func TestConsoleHelpers(t *testing.T) {
	Convey("view cursor positions map to board cells", t, func() {
		row, col := cellAt(0, 0)
		So([]int{row, col}, ShouldResemble, []int{1, 1})
		row, col = cellAt(1, 0)
		So([]int{row, col}, ShouldResemble, []int{1, 1})
		row, col = cellAt(29, 14)
		So([]int{row, col}, ShouldResemble, []int{15, 15})
	})
}
