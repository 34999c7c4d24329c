package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/coder/websocket"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/madrigal/internal/game"
	madnet "github.com/peterkuimelis/madrigal/internal/net"
)

// CardInfo is the JSON representation of a card for the /api/cards endpoint.
type CardInfo struct {
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	BasePoints    int    `json:"basePoints"`
	Hero          bool   `json:"hero"`
	Placement     string `json:"placement"`
	Reaction      string `json:"reaction"`
	RowEffect     bool   `json:"rowEffect"`
	OpponentBoard bool   `json:"opponentBoard"`
}

// Server is the madrigal web gateway: catalog and rules over HTTP, and a
// WebSocket bridge to a running game server.
type Server struct {
	rules  game.Rules
	mux    *http.ServeMux
	logger *zap.Logger
}

// NewServer creates a new web server. rulesFile may be empty for the
// default rules; logger may be nil.
func NewServer(rulesFile string, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	rules := game.DefaultRules()
	if rulesFile != "" {
		r, err := game.ParseRulesFile(rulesFile)
		if err != nil {
			return nil, err
		}
		rules = r
	}

	s := &Server{
		rules:  rules,
		mux:    http.NewServeMux(),
		logger: logger,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/rules", s.handleRules)

	// WebSocket proxy
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	var cards []CardInfo
	for _, d := range game.Definitions() {
		cards = append(cards, CardInfo{
			Name:          d.Name,
			Description:   d.Description,
			BasePoints:    d.BasePoints,
			Hero:          d.IsHero,
			Placement:     d.Placement.String(),
			Reaction:      d.Reaction.String(),
			RowEffect:     d.IsRowEffect(),
			OpponentBoard: d.PlayableOnOpponent(),
		})
	}
	writeJSON(w, cards)
}

// handleRules serves the active rules as JSON, or as YAML with ?format=yaml
// so the output can be saved as a rules file.
func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("format") == "yaml" {
		data, err := yaml.Marshal(s.rules)
		if err != nil {
			http.Error(w, "could not encode rules", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(data)
		return
	}
	writeJSON(w, struct {
		game.Rules
		DeckSize int `json:"deck_size"`
	}{s.rules, s.rules.DeckSize()})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.logger.Warn("websocket accept", zap.Error(err))
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()

	// Read initial connect message from browser
	_, connectData, err := wsConn.Read(ctx)
	if err != nil {
		s.logger.Warn("websocket read connect", zap.Error(err))
		return
	}

	var connectMsg struct {
		Type string `json:"type"`
		Addr string `json:"addr"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(connectData, &connectMsg); err != nil || connectMsg.Type != "connect" {
		wsConn.Close(websocket.StatusPolicyViolation, "expected connect message")
		return
	}

	// Open TCP connection to game server
	var d net.Dialer
	tcpConn, err := d.DialContext(ctx, "tcp", connectMsg.Addr)
	if err != nil {
		errMsg, _ := json.Marshal(madnet.ServerMessage{
			Type:  madnet.MsgError,
			Error: fmt.Sprintf("Could not connect to game server at %s: %v", connectMsg.Addr, err),
		})
		wsConn.Write(ctx, websocket.MessageText, errMsg)
		wsConn.Close(websocket.StatusNormalClosure, "connection failed")
		return
	}
	defer tcpConn.Close()
	s.logger.Info("bridging websocket", zap.String("remote", r.RemoteAddr), zap.String("game_server", connectMsg.Addr))

	if err := json.NewEncoder(tcpConn).Encode(madnet.ClientMessage{Type: madnet.MsgJoin, Name: connectMsg.Name}); err != nil {
		s.logger.Warn("tcp write join", zap.Error(err))
		return
	}

	done := make(chan struct{})

	// TCP → WebSocket (server messages to browser)
	go func() {
		defer close(done)
		dec := json.NewDecoder(tcpConn)
		for {
			var msg json.RawMessage
			if err := dec.Decode(&msg); err != nil {
				if err != io.EOF {
					s.logger.Debug("tcp read", zap.Error(err))
				}
				return
			}
			if err := wsConn.Write(ctx, websocket.MessageText, msg); err != nil {
				s.logger.Debug("websocket write", zap.Error(err))
				return
			}
		}
	}()

	// WebSocket → TCP (browser responses to server). Closing the TCP side
	// when the browser goes away unblocks the reader above.
	go func() {
		defer tcpConn.Close()
		for {
			_, data, err := wsConn.Read(ctx)
			if err != nil {
				return
			}
			data = append(data, '\n')
			if _, err := tcpConn.Write(data); err != nil {
				s.logger.Debug("tcp write", zap.Error(err))
				return
			}
		}
	}()

	<-done
	wsConn.Close(websocket.StatusNormalClosure, "game ended")
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}
