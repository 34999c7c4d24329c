package mcp

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/peterkuimelis/madrigal/internal/game"
	"github.com/peterkuimelis/madrigal/internal/table"
)

// Manager owns the matches of one MCP server process.
type Manager struct {
	rules  game.Rules
	logger *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a manager dealing matches under rules. logger may be nil.
func NewManager(rules game.Rules, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		rules:    rules,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// RegisterTools adds all game tools to the MCP server.
func (m *Manager) RegisterTools(s *server.MCPServer) {
	s.AddTool(startMatchTool(), m.handleStartMatch)
	s.AddTool(getStateTool(), m.handleGetState)
	s.AddTool(playCardTool(), m.withSession(m.handlePlayCard))
	s.AddTool(moveBoardCardTool(), m.withSession(m.handleMoveBoardCard))
	s.AddTool(passTool(), m.withSession(m.handlePass))
	s.AddTool(selectGraveyardCardTool(), m.withSession(m.handleSelectGraveyardCard))
	s.AddTool(selectBoardCardTool(), m.withSession(m.handleSelectBoardCard))
	s.AddTool(cancelStageTool(), m.withSession(m.handleCancelStage))
	s.AddTool(undoTool(), m.withSession(m.handleUndo))
}

// --- Tool definitions ---

func matchIDOption() mcp.ToolOption {
	return mcp.WithString("match_id", mcp.Required(), mcp.Description("Match ID returned by start_match"))
}

func startMatchTool() mcp.Tool {
	return mcp.NewTool("start_match",
		mcp.WithDescription("Deal a new hot-seat madrigal match. Every later call moves for whichever player the response names as actor. "+
			"Returns the match ID, the state from the actor's perspective and the legal actions."),
		mcp.WithNumber("seed", mcp.Description("Shuffle seed for a reproducible deal. Omit or 0 for a random deal.")),
	)
}

func getStateTool() mcp.Tool {
	return mcp.NewTool("get_state",
		mcp.WithDescription("Get the current state, new events and legal actions without moving. Read-only."),
		matchIDOption(),
	)
}

func playCardTool() mcp.Tool {
	return mcp.NewTool("play_card",
		mcp.WithDescription("Play a card from the actor's hand onto a board cell. Cells are row*7+col: rows green, blue, red; columns 0 and 6 are the row-effect cells."),
		matchIDOption(),
		mcp.WithString("card_id", mcp.Required(), mcp.Description("ID of the hand card")),
		mcp.WithNumber("cell", mcp.Required(), mcp.Description("Target cell, 0-20")),
		mcp.WithString("board", mcp.Description(`Board to play on: "own" (default) or "opponent"`)),
	)
}

func moveBoardCardTool() mcp.Tool {
	return mcp.NewTool("move_board_card",
		mcp.WithDescription("Move one of the actor's board cards to another cell of the same board. Only allowed while a field marshal reposition is pending."),
		matchIDOption(),
		mcp.WithString("card_id", mcp.Required(), mcp.Description("ID of the board card")),
		mcp.WithNumber("cell", mcp.Required(), mcp.Description("Target cell, 0-20")),
	)
}

func passTool() mcp.Tool {
	return mcp.NewTool("pass",
		mcp.WithDescription("Pass the turn. The sub-game ends when both players pass in a row."),
		matchIDOption(),
	)
}

func selectGraveyardCardTool() mcp.Tool {
	return mcp.NewTool("select_graveyard_card",
		mcp.WithDescription("Take a card from a graveyard into the actor's hand while a graveyard pick is pending."),
		matchIDOption(),
		mcp.WithString("card_id", mcp.Required(), mcp.Description("ID of the graveyard card")),
		mcp.WithString("graveyard", mcp.Description(`Graveyard to take from: "own" (default) or "opponent"`)),
	)
}

func selectBoardCardTool() mcp.Tool {
	return mcp.NewTool("select_board_card",
		mcp.WithDescription("Pick one of the actor's board cards: the card to move during a reposition, or the card to hand over during a trade."),
		matchIDOption(),
		mcp.WithString("card_id", mcp.Required(), mcp.Description("ID of the board card")),
	)
}

func cancelStageTool() mcp.Tool {
	return mcp.NewTool("cancel_stage",
		mcp.WithDescription("Skip the pending follow-up pick and end the turn."),
		matchIDOption(),
	)
}

func undoTool() mcp.Tool {
	return mcp.NewTool("undo",
		mcp.WithDescription("Revert the last successful move."),
		matchIDOption(),
	)
}

// --- Tool handlers ---

type sessionHandler func(ctx context.Context, sess *Session, request mcp.CallToolRequest) (*ToolResponse, error)

// withSession resolves match_id and turns handler errors into tool errors.
func (m *Manager) withSession(h sessionHandler) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sess, errResult := m.lookup(request)
		if errResult != nil {
			return errResult, nil
		}
		resp, err := h(ctx, sess, request)
		if err != nil {
			m.logger.Debug("tool call rejected",
				zap.String("tool", request.Params.Name),
				zap.String("match_id", sess.ID),
				zap.Error(err),
			)
			return mcp.NewToolResultErrorf("%s: %v", request.Params.Name, err), nil
		}
		if resp.GameOver {
			m.logger.Info("match over", zap.String("match_id", sess.ID), zap.String("result", resp.Result))
		}
		return mcp.NewToolResultText(respondJSON(resp)), nil
	}
}

func (m *Manager) lookup(request mcp.CallToolRequest) (*Session, *mcp.CallToolResult) {
	id := request.GetString("match_id", "")
	if id == "" {
		return nil, mcp.NewToolResultError("match_id is required. Use start_match first.")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, mcp.NewToolResultErrorf("No match with ID %q.", id)
	}
	return sess, nil
}

func (m *Manager) handleStartMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	seed := int64(request.GetInt("seed", 0))
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	id := uuid.NewString()
	engine := game.NewEngine(m.rules, nil)
	tbl := table.New(engine, rand.New(rand.NewSource(seed)), m.logger.With(zap.String("match_id", id)))
	sess := newSession(id, tbl)

	m.mu.Lock()
	m.sessions[id] = sess
	m.mu.Unlock()

	m.logger.Info("match started", zap.String("match_id", id), zap.Int64("seed", seed))
	return mcp.NewToolResultText(respondJSON(sess.respond())), nil
}

func (m *Manager) handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := m.lookup(request)
	if errResult != nil {
		return errResult, nil
	}
	return mcp.NewToolResultText(respondJSON(sess.respond())), nil
}

func (m *Manager) handlePlayCard(ctx context.Context, sess *Session, request mcp.CallToolRequest) (*ToolResponse, error) {
	return sess.playCard(request.GetString("card_id", ""), request.GetInt("cell", -1), request.GetString("board", "own"))
}

func (m *Manager) handleMoveBoardCard(ctx context.Context, sess *Session, request mcp.CallToolRequest) (*ToolResponse, error) {
	return sess.moveBoardCard(request.GetString("card_id", ""), request.GetInt("cell", -1))
}

func (m *Manager) handlePass(ctx context.Context, sess *Session, request mcp.CallToolRequest) (*ToolResponse, error) {
	return sess.pass()
}

func (m *Manager) handleSelectGraveyardCard(ctx context.Context, sess *Session, request mcp.CallToolRequest) (*ToolResponse, error) {
	return sess.selectGraveyardCard(request.GetString("card_id", ""), request.GetString("graveyard", "own"))
}

func (m *Manager) handleSelectBoardCard(ctx context.Context, sess *Session, request mcp.CallToolRequest) (*ToolResponse, error) {
	return sess.selectBoardCard(request.GetString("card_id", ""))
}

func (m *Manager) handleCancelStage(ctx context.Context, sess *Session, request mcp.CallToolRequest) (*ToolResponse, error) {
	return sess.cancelStage()
}

func (m *Manager) handleUndo(ctx context.Context, sess *Session, request mcp.CallToolRequest) (*ToolResponse, error) {
	return sess.undo()
}
