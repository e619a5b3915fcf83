package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/gorilla/websocket"

	"github.com/trytobebee/snake_arcade/pkg/config"
	"github.com/trytobebee/snake_arcade/pkg/logging"
	"github.com/trytobebee/snake_arcade/pkg/session"
	"github.com/trytobebee/snake_arcade/pkg/storage"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// ServerMessage is pushed to the browser after every change
type ServerMessage struct {
	Type  string        `json:"type"`
	View  *session.View `json:"view,omitempty"`
	Error string        `json:"error,omitempty"`
}

// ClientMessage is one browser input
type ClientMessage struct {
	Action string `json:"action"`
	Rune   string `json:"rune,omitempty"`
	X      int    `json:"x,omitempty"`
	Y      int    `json:"y,omitempty"`
}

// GameServer owns the shared resources of all connections
type GameServer struct {
	settings    config.Settings
	leaderboard *storage.Leaderboard
	highScores  *storage.HighScores
	activeIPs   sync.Map // One connection per IP
}

// actionKeys maps browser actions to session keys
var actionKeys = map[string]session.Key{
	"up":        session.KeyUp,
	"down":      session.KeyDown,
	"left":      session.KeyLeft,
	"right":     session.KeyRight,
	"enter":     session.KeyEnter,
	"escape":    session.KeyEscape,
	"backspace": session.KeyBackspace,
	"space":     session.KeySpace,
}

// toEvent translates a client message into a session event
func toEvent(msg ClientMessage) (session.Event, bool) {
	if k, ok := actionKeys[msg.Action]; ok {
		return session.Press(k), true
	}
	switch msg.Action {
	case "char":
		if r, size := utf8.DecodeRuneInString(msg.Rune); size > 0 && r != utf8.RuneError {
			return session.Char(r), true
		}
	case "click":
		return session.ClickAt(msg.X, msg.Y), true
	case "hover":
		return session.HoverAt(msg.X, msg.Y), true
	}
	return session.Event{}, false
}

// remoteIP strips the port from a request's remote address
func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (gs *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	enc, err := codecFor(r.URL.Query().Get("codec"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}
	defer conn.Close()

	ip := remoteIP(r)
	if _, loaded := gs.activeIPs.LoadOrStore(ip, true); loaded {
		log.Printf("Connection rejected: IP %s is already connected\n", ip)
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Already connected"))
		return
	}
	defer gs.activeIPs.Delete(ip)

	opts := []session.Option{session.WithHighScores(gs.highScores)}
	if gs.leaderboard != nil {
		opts = append(opts, session.WithLeaderboard(gs.leaderboard))
	}
	s := session.New(gs.settings, opts...)
	defer s.Close()
	log.Printf("Session %s opened for %s (%s codec)", s.ID(), ip, enc.name)

	// Mutex to protect concurrent writes to the WebSocket connection
	var writeMu sync.Mutex
	send := func(msg ServerMessage) error {
		data, err := enc.marshal(msg)
		if err != nil {
			return err
		}
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteMessage(enc.messageType, data)
	}

	// The reader only parses; the session is touched by the loop below alone
	events := make(chan session.Event, 32)
	closed := make(chan struct{})
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		defer close(closed)
		for {
			var msg ClientMessage
			if err := conn.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Println("Read error:", err)
				}
				return
			}
			ev, ok := toEvent(msg)
			if !ok {
				send(ServerMessage{Type: "error", Error: fmt.Sprintf("unknown action %q", msg.Action)})
				continue
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	sendView := func() error {
		v := s.View()
		return send(ServerMessage{Type: "view", View: &v})
	}
	if err := sendView(); err != nil {
		log.Println("Write error:", err)
		return
	}

	ticker := time.NewTicker(config.FrameInterval)
	defer ticker.Stop()
	last := time.Now()
	lastTicks := -1

	for !s.Done() {
		select {
		case <-closed:
			log.Printf("Session %s closed", s.ID())
			return

		case ev := <-events:
			if err := s.Handle(ev); err != nil {
				log.Printf("Session %s: %v", s.ID(), err)
			}
			if err := sendView(); err != nil {
				log.Println("Write error:", err)
				return
			}

		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if err := s.Update(dt); err != nil {
				log.Printf("Session %s: %v", s.ID(), err)
			}
			// Push only frames where the board moved
			v := s.View()
			if v.Snapshot == nil || v.Snapshot.Ticks == lastTicks {
				continue
			}
			lastTicks = v.Snapshot.Ticks
			if err := send(ServerMessage{Type: "view", View: &v}); err != nil {
				log.Println("Write error:", err)
				return
			}
		}
	}

	send(ServerMessage{Type: "bye"})
	log.Printf("Session %s quit", s.ID())
}

func main() {
	envFile := flag.String("env", ".env", "optional env file")
	static := flag.String("static", "web/static", "directory with the browser client")
	flag.Parse()

	settings, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading settings:", err)
		os.Exit(1)
	}
	logFile, err := logging.Setup(settings.DataDir, settings.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error setting up logging:", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	gs := &GameServer{settings: settings, highScores: storage.NewHighScores(settings.HighScoreFile)}
	if settings.DBPath != "" {
		lb, err := storage.OpenLeaderboard(settings.DBPath)
		if err != nil {
			log.Printf("leaderboard disabled: %v", err)
		} else {
			defer lb.Close()
			gs.leaderboard = lb
		}
	}

	// Serve static files
	http.Handle("/", http.FileServer(http.Dir(*static)))
	// WebSocket endpoint
	http.HandleFunc("/ws", gs.handleWebSocket)

	fmt.Printf("🚀 Snake Arcade Web Server starting on http://localhost%s\n", settings.Addr)
	if err := http.ListenAndServe(settings.Addr, nil); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
