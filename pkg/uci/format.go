package uci

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatCommand formats an outbound Command as the single line sent to
// the engine's stdin (without a trailing newline; Send adds that).
func FormatCommand(cmd Command) string {
	switch c := cmd.(type) {
	case UciCommand:
		return "uci"
	case IsReadyCommand:
		return "isready"
	case UciNewGameCommand:
		return "ucinewgame"
	case StopCommand:
		return "stop"
	case QuitCommand:
		return "quit"
	case SetOptionCommand:
		if c.Value == nil {
			return "setoption name " + c.Name
		}
		return "setoption name " + c.Name + " value " + *c.Value
	case PositionCommand:
		return formatPosition(c)
	case GoCommand:
		return formatGo(c)
	default:
		panic(fmt.Sprintf("uci: unknown command type %T", cmd))
	}
}

func formatPosition(c PositionCommand) string {
	var sb strings.Builder
	sb.WriteString("position ")
	if c.StartPos {
		sb.WriteString("startpos")
	} else {
		sb.WriteString("fen ")
		sb.WriteString(c.FEN)
	}
	if len(c.Moves) > 0 {
		sb.WriteString(" moves")
		for _, mv := range c.Moves {
			sb.WriteByte(' ')
			sb.WriteString(FormatMove(mv))
		}
	}
	return sb.String()
}

func formatGo(c GoCommand) string {
	var parts []string
	parts = append(parts, "go")
	if c.Depth != nil {
		parts = append(parts, "depth", strconv.Itoa(*c.Depth))
	}
	if c.Nodes != nil {
		parts = append(parts, "nodes", strconv.FormatUint(*c.Nodes, 10))
	}
	switch {
	case c.Infinite:
		parts = append(parts, "infinite")
	case c.MoveTime != nil:
		parts = append(parts, "movetime", strconv.FormatInt(c.MoveTime.Milliseconds(), 10))
	case c.WTime != nil || c.BTime != nil || c.WInc != nil || c.BInc != nil || c.MovesToGo != nil:
		if c.WTime != nil {
			parts = append(parts, "wtime", strconv.FormatInt(c.WTime.Milliseconds(), 10))
		}
		if c.BTime != nil {
			parts = append(parts, "btime", strconv.FormatInt(c.BTime.Milliseconds(), 10))
		}
		if c.WInc != nil {
			parts = append(parts, "winc", strconv.FormatInt(c.WInc.Milliseconds(), 10))
		}
		if c.BInc != nil {
			parts = append(parts, "binc", strconv.FormatInt(c.BInc.Milliseconds(), 10))
		}
		if c.MovesToGo != nil {
			parts = append(parts, "movestogo", strconv.Itoa(*c.MovesToGo))
		}
	}
	return strings.Join(parts, " ")
}
