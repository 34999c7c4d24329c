package net

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/peterkuimelis/madrigal/internal/game"
)

// Client connects to a game server and provides a terminal REPL.
type Client struct {
	conn       net.Conn
	playerName string // "P1" or "P2"
	in         *bufio.Reader
	out        io.Writer
}

// NewClient creates a REPL client reading commands from in.
func NewClient(conn net.Conn, playerName string, in io.Reader, out io.Writer) *Client {
	return &Client{
		conn:       conn,
		playerName: playerName,
		in:         bufio.NewReader(in),
		out:        out,
	}
}

// Connect connects to a server, joins the match and runs the REPL.
func Connect(ctx context.Context, addr, name string) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	if err := json.NewEncoder(conn).Encode(ClientMessage{Type: MsgJoin, Name: name}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}

	fmt.Println("Connected! Waiting for game to start...")

	client := NewClient(conn, "P2", os.Stdin, os.Stdout)
	return client.RunREPL(ctx)
}

// RunREPL reads server messages and handles them interactively.
func (c *Client) RunREPL(ctx context.Context) error {
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		switch msg.Type {
		case MsgNotify:
			c.renderEvent(msg.Event)

		case MsgError:
			fmt.Fprintf(c.out, "Rejected: %s\n", msg.Error)

		case MsgChooseAction:
			c.renderState(msg.State)
			c.renderActions(msg.Prompt, msg.Actions)
			seat := seatOf(msg.State)
			reply, err := c.readCommand(len(msg.Actions), seat, msg.State)
			if err != nil {
				return err
			}
			if err := enc.Encode(reply); err != nil {
				return fmt.Errorf("send action: %w", err)
			}

		case MsgGameOver:
			c.renderState(msg.State)
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, "          MATCH OVER")
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, msg.Result)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			return nil
		}
	}
}

func seatOf(sv *StateView) game.PlayerID {
	if sv != nil && sv.Seat == game.Player1.String() {
		return game.Player1
	}
	return game.Player0
}

var errShowState = errors.New("show state")

const commandHelp = `Commands:
  N                      take action N from the list
  play CARD CELL [opp]   play a hand card to a cell of your (or the opponent's) board
  move CARD CELL         move one of your board cards
  grave CARD [opp]       take a card from your (or the opponent's) graveyard
  give CARD              hand over one of your board cards
  pass | cancel | state | help`

// readCommand prompts until the user enters a usable command.
func (c *Client) readCommand(count int, seat game.PlayerID, sv *StateView) (ClientMessage, error) {
	for {
		fmt.Fprint(c.out, "> ")
		line, err := c.in.ReadString('\n')
		if err != nil && line == "" {
			return ClientMessage{}, fmt.Errorf("read input: %w", err)
		}
		msg, perr := parseCommand(line, count, seat)
		switch {
		case perr == nil:
			return msg, nil
		case errors.Is(perr, errShowState):
			c.renderState(sv)
		default:
			fmt.Fprintln(c.out, perr)
		}
	}
}

// parseCommand turns one line of input into a client message. Action numbers
// are 1-based.
func parseCommand(line string, count int, seat game.PlayerID) (ClientMessage, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ClientMessage{}, fmt.Errorf("Enter a number between 1 and %d, or help", count)
	}

	if n, err := strconv.Atoi(fields[0]); err == nil {
		if n < 1 || n > count {
			return ClientMessage{}, fmt.Errorf("Enter a number between 1 and %d", count)
		}
		return ClientMessage{Type: MsgAction, Index: n - 1}, nil
	}

	owner := func(args []string) game.PlayerID {
		if len(args) > 0 && strings.EqualFold(args[0], "opp") {
			return seat.Opponent()
		}
		return seat
	}
	move := func(m game.Move) (ClientMessage, error) {
		return ClientMessage{Type: MsgMove, Move: &m}, nil
	}

	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "pass":
		return move(game.Move{Kind: game.MovePass})
	case "cancel", "skip":
		return move(game.Move{Kind: game.MoveCancelStage})
	case "state":
		return ClientMessage{}, errShowState
	case "help", "?":
		return ClientMessage{}, errors.New(commandHelp)
	case "play", "move":
		if len(args) < 2 {
			return ClientMessage{}, fmt.Errorf("usage: %s CARD CELL", cmd)
		}
		cell, err := strconv.Atoi(args[1])
		if err != nil {
			return ClientMessage{}, fmt.Errorf("bad cell %q", args[1])
		}
		if cmd == "move" {
			return move(game.Move{Kind: game.MovePlayFromBoard, CardID: args[0], Cell: cell, BoardOwner: seat, FromOwner: seat})
		}
		return move(game.Move{Kind: game.MovePlayFromHand, CardID: args[0], Cell: cell, BoardOwner: owner(args[2:])})
	case "grave":
		if len(args) < 1 {
			return ClientMessage{}, errors.New("usage: grave CARD [opp]")
		}
		return move(game.Move{Kind: game.MoveSelectGraveyard, CardID: args[0], BoardOwner: owner(args[1:])})
	case "give":
		if len(args) < 1 {
			return ClientMessage{}, errors.New("usage: give CARD")
		}
		return move(game.Move{Kind: game.MoveSelectBoard, CardID: args[0], BoardOwner: seat})
	default:
		return ClientMessage{}, fmt.Errorf("unknown command %q, try help", fields[0])
	}
}

func (c *Client) renderEvent(ev *EventView) {
	if ev == nil {
		return
	}
	kind := ev.Type
	for len(kind) < 14 {
		kind += " "
	}
	fmt.Fprintf(c.out, "G%d %s| %s\n", ev.SubGame, kind, ev.Description)
}

func (c *Client) renderState(sv *StateView) {
	if sv == nil {
		return
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "╔══════════════════════════════════════════════════════╗")

	opp := sv.Opponent
	fmt.Fprintf(c.out, "║  OPPONENT  Points: %d  Games: %d  Hand: %d  Graveyard: %d%s\n",
		opp.Points, opp.GamesWon, opp.HandCount, opp.GraveyardCount, passedMark(opp.Passed))
	c.renderBoard(opp.Board)

	fmt.Fprintln(c.out, "║──────────────────────────────────────────────────────")

	you := sv.You
	c.renderBoard(you.Board)
	fmt.Fprintf(c.out, "║  YOU (%s)  Points: %d  Games: %d  Hand: %d  Graveyard: %d%s\n",
		sv.Seat, you.Points, you.GamesWon, you.HandCount, you.GraveyardCount, passedMark(you.Passed))
	fmt.Fprintln(c.out, "╚══════════════════════════════════════════════════════╝")

	turnInfo := fmt.Sprintf("Sub-game %d | Turn %d | Deck %d", sv.SubGame, sv.Turn, sv.DeckCount)
	switch {
	case sv.IsYourMove && !sv.IsYourTurn:
		turnInfo += " | Your response"
	case sv.IsYourMove:
		turnInfo += " | Your turn"
	default:
		turnInfo += " | Opponent's turn"
	}
	if sv.Stage != game.StageDefault.String() {
		turnInfo += fmt.Sprintf(" | %s (%d left)", sv.Stage, sv.MovesLeft)
	}
	fmt.Fprintln(c.out, turnInfo)

	if len(you.Hand) > 0 {
		fmt.Fprintln(c.out, "\nHand:")
		for _, cv := range you.Hand {
			fmt.Fprintf(c.out, "  %-24s %s\n", cv.ID, formatCard(cv))
		}
	}
	if len(you.Graveyard) > 0 {
		fmt.Fprintf(c.out, "Graveyard top: %s (%s)\n", formatCard(you.Graveyard[0]), you.Graveyard[0].ID)
	}
}

func (c *Client) renderBoard(slots []SlotView) {
	for row := 0; row < game.BoardRows; row++ {
		var line strings.Builder
		for _, s := range slots {
			if s.Row != row {
				continue
			}
			if s.Col == 0 {
				fmt.Fprintf(&line, "║  %-5s ", s.Color)
			}
			name := ""
			if s.Card != nil {
				name = fmt.Sprintf("%s %d", s.Card.Name, s.Card.Points)
			}
			fmt.Fprintf(&line, "[%2d %-12s]", s.Cell, name)
		}
		fmt.Fprintln(c.out, line.String())
	}
}

func formatCard(cv CardView) string {
	s := fmt.Sprintf("%s %s %d", cv.Color, cv.Name, cv.Points)
	if cv.Hero {
		s += " (hero)"
	}
	return s
}

func passedMark(passed bool) string {
	if passed {
		return "  PASSED"
	}
	return ""
}

func (c *Client) renderActions(prompt string, actions []ActionView) {
	fmt.Fprintf(c.out, "\n%s:\n", prompt)
	for _, a := range actions {
		fmt.Fprintf(c.out, "  %d) %s\n", a.Index+1, a.Desc)
	}
}
