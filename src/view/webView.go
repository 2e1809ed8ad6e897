package view

import (
	"context"
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"colorlife/src/universe"
)

const (
	//Time allowed to write a message to the peer.
	writeWait = 1 * time.Second
	//Maximum message size allowed from peer.
	maxMessageSize = 1024
	//Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	//Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	//Time allowed for the http server to finish on shutdown.
	shutdownWait = 5 * time.Second
)

//ErrUnknownCommand is sent back for a command type the board doesn't know.
var ErrUnknownCommand = errors.New("unknown command")

//Messages to the browser.
type boardMessage struct {
	Type       string        `json:"type"`
	Generation int           `json:"generation"`
	Mode       string        `json:"mode"`
	LiveCells  int           `json:"liveCells"`
	Cells      []cellMessage `json:"cells"`
}

type cellMessage struct {
	Row     int     `json:"row"`
	Col     int     `json:"col"`
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
	Alive   bool    `json:"alive"`
}

type errorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

//commandMessage comes from the browser: setColor, start, pause, clear or tick.
type commandMessage struct {
	Type  string `json:"type"`
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Color string `json:"color"`
}

//WebView serves the board to browsers: every change is pushed over a websocket
//as a full board snapshot, and the page sends color edits and clock commands back.
//Snapshots are idempotent, so a client which is too slow only gets the latest one.
type WebView struct {
	addr     string
	upgrader websocket.Upgrader
	ctx      context.Context
	stop     context.CancelFunc

	mu      sync.Mutex
	u       universe.Universe
	clients map[*webClient]struct{}
}

type webClient struct {
	ws   *websocket.Conn
	send chan []byte
}

//NewWebView creates the web board listening on addr once served.
func NewWebView(addr string) *WebView {
	ctx, stop := context.WithCancel(context.Background())
	return &WebView{
		addr:    addr,
		ctx:     ctx,
		stop:    stop,
		clients: map[*webClient]struct{}{},
	}
}

func (w *WebView) Register(u universe.Universe) {
	w.mu.Lock()
	w.u = u
	w.mu.Unlock()
}

func (w *WebView) simulation() universe.Universe {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.u
}

//Refresh pushes the current board to every client.
func (w *WebView) Refresh() {
	msg, err := w.snapshot()
	if err != nil {
		log.Printf("web: snapshot: %v", err)
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for c := range w.clients {
		c.offer(msg)
	}
}

//Start serves until Stop is called or the server fails.
func (w *WebView) Start() {
	if err := w.Serve(w.ctx); err != nil {
		log.Printf("web: %v", err)
	}
}

//Stop shuts the server started by Start down.
func (w *WebView) Stop() {
	w.stop()
}

//Serve runs the http server until ctx is done.
func (w *WebView) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              w.addr,
		Handler:           w.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("web: board on http://%s/", w.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrapf(err, "[Serve] %s", w.addr)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWait)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("web: shutdown: %v", err)
	}
	w.closeClients()
	return nil
}

//Handler routes the page, the websocket and the health check.
func (w *WebView) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", w.serveIndex)
	mux.HandleFunc("/ws", w.serveWebsocket)
	mux.HandleFunc("/health", func(rw http.ResponseWriter, _ *http.Request) {
		rw.WriteHeader(http.StatusOK)
		_, _ = rw.Write([]byte("ok"))
	})
	return mux
}

func (w *WebView) serveIndex(rw http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.Error(rw, "Not found", http.StatusNotFound)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(rw, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	rw.Header().Set("Content-Type", "text/html")
	if err := indexTemplate.Execute(rw, rows()); err != nil {
		log.Printf("web: index: %v", err)
	}
}

func (w *WebView) serveWebsocket(rw http.ResponseWriter, r *http.Request) {
	ws, err := w.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		log.Printf("web: upgrade: %v", err)
		return
	}

	c := &webClient{ws: ws, send: make(chan []byte, 1)}
	if msg, err := w.snapshot(); err == nil {
		c.offer(msg)
	}
	w.addClient(c)
	defer w.removeClient(c)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		defer cancel()
		return w.readPump(c)
	})
	group.Go(func() error {
		return c.writePump(ctx)
	})
	if err := group.Wait(); err != nil {
		log.Printf("web: client %s: %v", r.RemoteAddr, err)
	}
}

//readPump handles the commands from the client until it disconnects.
func (w *WebView) readPump(c *webClient) error {
	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				return err
			}
			return nil
		}

		var cmd commandMessage
		if err = json.Unmarshal(data, &cmd); err == nil {
			err = w.handleCommand(cmd)
		}
		if err != nil {
			log.Printf("web: command: %v", err)
			if msg, err := json.Marshal(errorMessage{Type: "error", Error: err.Error()}); err == nil {
				c.offer(msg)
			}
		}
	}
}

func (w *WebView) handleCommand(cmd commandMessage) error {
	u := w.simulation()
	if u == nil {
		return errors.New("no simulation")
	}
	switch cmd.Type {
	case "setColor":
		color, err := universe.ParseColor(cmd.Color)
		if err != nil {
			return err
		}
		u.SetColor(cmd.Row, cmd.Col, color)
	case "start":
		u.Start()
	case "pause":
		u.Pause()
	case "clear":
		u.Clear()
	case "tick":
		u.Tick()
	default:
		return errors.Wrapf(ErrUnknownCommand, "%q", cmd.Type)
	}
	return nil
}

//writePump sends the queued messages and pings, it closes the connection when done.
func (c *webClient) writePump(ctx context.Context) error {
	defer c.ws.Close()
	pinger := channerics.NewTicker(ctx.Done(), pingPeriod)
	for {
		select {
		case <-ctx.Done():
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.ws.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return nil
		case msg := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return errors.Wrap(err, "[writePump] write")
			}
		case <-pinger:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return errors.Wrap(err, "[writePump] ping")
			}
		}
	}
}

//offer queues msg, replacing a message the client hasn't taken yet.
func (c *webClient) offer(msg []byte) {
	for {
		select {
		case c.send <- msg:
			return
		default:
		}
		select {
		case <-c.send:
		default:
		}
	}
}

func (w *WebView) addClient(c *webClient) {
	w.mu.Lock()
	w.clients[c] = struct{}{}
	w.mu.Unlock()
}

func (w *WebView) removeClient(c *webClient) {
	w.mu.Lock()
	delete(w.clients, c)
	w.mu.Unlock()
}

//closeClients drops the hijacked connections, the http server doesn't track them.
func (w *WebView) closeClients() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for c := range w.clients {
		_ = c.ws.Close()
	}
}

func (w *WebView) snapshot() ([]byte, error) {
	u := w.simulation()
	if u == nil {
		return nil, errors.New("no simulation")
	}
	st := u.Status()
	b := u.Board()
	msg := boardMessage{
		Type:       "board",
		Generation: st.Generation,
		Mode:       st.RunningMode.String(),
		LiveCells:  st.LiveCells,
		Cells:      make([]cellMessage, 0, universe.Size*universe.Size),
	}
	for _, row := range b {
		for _, c := range row {
			msg.Cells = append(msg.Cells, cellMessage{
				Row:     c.Row,
				Col:     c.Col,
				Color:   c.Color.String(),
				Opacity: c.Opacity(),
				Alive:   c.Alive,
			})
		}
	}
	return json.Marshal(msg)
}

type boardRow struct {
	Row  int
	Cols []int
}

func rows() []boardRow {
	r := make([]boardRow, universe.Size)
	for i := range r {
		r[i].Row = i + 1
		for col := 1; col <= universe.Size; col++ {
			r[i].Cols = append(r[i].Cols, col)
		}
	}
	return r
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Color Life</title>
<style>
  .board input { width: 28px; height: 28px; padding: 0; border: 1px solid #ddd; }
  .game-info { margin-top: 8px; font-family: sans-serif; }
</style>
</head>
<body>
<div class="game">
  <div class="board">
  {{range .}}{{$row := .Row}}{{range .Cols}}<input type="color" class="square" data-row="{{$row}}" data-col="{{.}}" value="#ffffff">{{end}}<br>
  {{end}}
  </div>
  <div class="game-info">
    <button data-cmd="start">Start</button>
    <button data-cmd="pause">Pause</button>
    <button data-cmd="tick">Step</button>
    <button data-cmd="clear">Clear</button>
    <span id="status"></span>
  </div>
</div>
<script>
  const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
  const square = (r, c) => document.querySelector('.square[data-row="' + r + '"][data-col="' + c + '"]');
  ws.onmessage = (ev) => {
    const msg = JSON.parse(ev.data);
    if (msg.type === "error") { console.warn(msg.error); return; }
    for (const c of msg.cells) {
      const el = square(c.row, c.col);
      el.value = c.color;
      el.style.opacity = c.alive ? c.opacity : 1;
    }
    document.getElementById("status").textContent =
      "generation " + msg.generation + ", " + msg.mode + ", " + msg.liveCells + " alive";
  };
  document.querySelectorAll(".square").forEach((el) => el.addEventListener("change", () => {
    ws.send(JSON.stringify({type: "setColor", row: +el.dataset.row, col: +el.dataset.col, color: el.value}));
  }));
  document.querySelectorAll("button[data-cmd]").forEach((el) => el.addEventListener("click", () => {
    ws.send(JSON.stringify({type: el.dataset.cmd}));
  }));
</script>
</body>
</html>
`))
