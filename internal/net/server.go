package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/peterkuimelis/madrigal/internal/game"
	"github.com/peterkuimelis/madrigal/internal/log"
	"github.com/peterkuimelis/madrigal/internal/table"
)

// Server hosts a match between the local player and one TCP client.
type Server struct {
	Port      string
	RulesFile string    // optional YAML rules, defaults otherwise
	Seed      int64     // deal seed, 0 picks one from the clock
	EventLog  io.Writer // optional, receives the text event log
	Logger    *zap.Logger
}

// Run starts the server, waits for a client to join, then runs the match.
func (s *Server) Run(ctx context.Context) error {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	rules := game.DefaultRules()
	if s.RulesFile != "" {
		r, err := game.ParseRulesFile(s.RulesFile)
		if err != nil {
			return err
		}
		rules = r
	}

	ln, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer ln.Close()
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	fmt.Printf("Waiting for opponent on port %s...\n", s.Port)

	// Accept exactly one connection (the joiner)
	conn, err := ln.Accept()
	if err != nil {
		return fmt.Errorf("accept: %w", err)
	}
	defer conn.Close()
	stopConn := context.AfterFunc(ctx, func() { conn.Close() })
	defer stopConn()

	var joinMsg ClientMessage
	if err := json.NewDecoder(conn).Decode(&joinMsg); err != nil {
		return fmt.Errorf("read join message: %w", err)
	}
	if joinMsg.Type != MsgJoin {
		return fmt.Errorf("expected join message, got %q", joinMsg.Type)
	}
	logger.Info("opponent joined",
		zap.String("remote", conn.RemoteAddr().String()),
		zap.String("name", joinMsg.Name),
	)
	fmt.Printf("Opponent connected from %s\n", conn.RemoteAddr())

	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	var events log.EventLogger
	if s.EventLog != nil {
		events = log.NewTextLogger(s.EventLog)
	}
	engine := game.NewEngine(rules, events)
	tbl := table.New(engine, rand.New(rand.NewSource(seed)), logger)
	logger.Info("match dealt", zap.Int64("seed", seed), zap.Int("deck_size", rules.DeckSize()))

	// Player 0 = host over a pipe, Player 1 = joiner
	hostConn, hostServerConn := net.Pipe()
	defer hostServerConn.Close()
	seats := [2]*Seat{
		NewSeat(hostServerConn, game.Player0),
		NewSeat(conn, game.Player1),
	}

	errCh := make(chan error, 2)
	go func() {
		client := NewClient(hostConn, "P1", os.Stdin, os.Stdout)
		errCh <- client.RunREPL(ctx)
	}()
	go func() {
		errCh <- Serve(ctx, tbl, seats, logger)
	}()

	// Wait for either the match or the REPL to finish
	return <-errCh
}

// Serve drives tbl to the end of the match, forwarding events to both seats
// and asking whichever seat must move for its next move.
func Serve(ctx context.Context, tbl *table.Table, seats [2]*Seat, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	sent := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		events := tbl.EventsSince(sent)
		for _, ev := range events {
			for _, seat := range seats {
				if err := seat.Notify(ev); err != nil {
					return fmt.Errorf("notify %s: %w", seat.player, err)
				}
			}
		}
		sent += len(events)

		if tbl.Over() {
			break
		}

		actor := tbl.Actor()
		gs := tbl.State()
		view := BuildStateView(gs, actor, tbl.CurrentPlayer(), tbl.Turn())
		m, err := seats[actor].ChooseMove(view, tbl.LegalMoves(actor), gs.Pending.Stage.Prompt())
		if err == nil {
			err = tbl.Apply(actor, m)
		}
		if errors.Is(err, game.ErrInvalidMove) {
			logger.Debug("move rejected", zap.Stringer("seat", actor), zap.Error(err))
			if err := seats[actor].SendError(err); err != nil {
				return fmt.Errorf("send error to %s: %w", actor, err)
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("%s: %w", actor, err)
		}
	}

	winner := ""
	if w, ok := tbl.Winner(); ok {
		winner = w.String()
	}
	result := tbl.Result()
	logger.Info("match over", zap.String("result", result))

	gs := tbl.State()
	for _, seat := range seats {
		view := BuildStateView(gs, seat.player, tbl.CurrentPlayer(), tbl.Turn())
		if err := seat.SendGameOver(winner, result, view); err != nil {
			return fmt.Errorf("send game_over to %s: %w", seat.player, err)
		}
	}
	return nil
}
