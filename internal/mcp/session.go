package mcp

import (
	"encoding/json"
	"fmt"
	"sync"

	madnet "github.com/peterkuimelis/madrigal/internal/net"
	"github.com/peterkuimelis/madrigal/internal/table"
)

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	MatchID  string              `json:"match_id"`
	Events   []madnet.EventView  `json:"events"`
	State    *madnet.StateView   `json:"state,omitempty"`
	Actor    string              `json:"actor,omitempty"`
	Prompt   string              `json:"prompt,omitempty"`
	Actions  []madnet.ActionView `json:"actions,omitempty"`
	GameOver bool                `json:"game_over"`
	Winner   string              `json:"winner,omitempty"`
	Result   string              `json:"result,omitempty"`
}

// Session is one hot-seat match: every tool call moves for whichever seat
// the table expects next.
type Session struct {
	ID    string
	table *table.Table

	mu   sync.Mutex
	sent int // events already returned to the caller
}

func newSession(id string, tbl *table.Table) *Session {
	return &Session{ID: id, table: tbl}
}

// drainEvents returns the events recorded since the last response.
func (s *Session) drainEvents() []madnet.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.table.State().Events)
	if s.sent > n {
		// An undo dropped events the caller has already seen.
		s.sent = n
	}
	events := make([]madnet.EventView, 0)
	for _, ev := range s.table.EventsSince(s.sent) {
		events = append(events, madnet.NewEventView(ev))
	}
	s.sent += len(events)
	return events
}

// respond builds a response from the acting seat's perspective.
func (s *Session) respond() *ToolResponse {
	resp := &ToolResponse{
		MatchID: s.ID,
		Events:  s.drainEvents(),
	}

	gs := s.table.State()
	actor := s.table.Actor()
	resp.State = madnet.BuildStateView(gs, actor, s.table.CurrentPlayer(), s.table.Turn())

	if s.table.Over() {
		resp.GameOver = true
		resp.Result = s.table.Result()
		if w, ok := s.table.Winner(); ok {
			resp.Winner = w.String()
		}
		return resp
	}

	resp.Actor = actor.String()
	resp.Prompt = gs.Pending.Stage.Prompt()
	resp.Actions = madnet.NewActionViews(s.table.LegalMoves(actor))
	return resp
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
