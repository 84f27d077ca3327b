package uci

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chess-backend/uci-arbiter/pkg/board"
)

// ParseError describes why a line could not be parsed as UCI traffic;
// it is the parse_error half of the core's InvalidMessage(raw, err).
type ParseError struct {
	Raw    string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("uci: cannot parse %q: %s", e.Raw, e.Reason)
}

// ParseLine parses one inbound line (without its trailing newline) into
// a Remark. Blank lines and unrecognized leading tokens are reported as
// an UnknownRemark rather than an error, since real engines occasionally
// emit chatter (e.g. "Stockfish 16 by ...") before "id"; the Engine
// Session is responsible for turning those into warnings.
func ParseLine(line string) (Remark, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return UnknownRemark{Raw: line}, nil
	}
	switch fields[0] {
	case "uciok":
		return UciOk{}, nil
	case "readyok":
		return ReadyOk{}, nil
	case "id":
		return parseID(fields, line)
	case "option":
		return parseOption(fields, line)
	case "info":
		return parseInfo(fields), nil
	case "bestmove":
		return parseBestMove(fields, line)
	default:
		return UnknownRemark{Raw: line}, nil
	}
}

func parseID(fields []string, raw string) (Remark, error) {
	if len(fields) < 3 {
		return nil, &ParseError{Raw: raw, Reason: "id requires a sub-kind and value"}
	}
	rest := strings.Join(fields[2:], " ")
	switch fields[1] {
	case "name":
		return IDName{Name: rest}, nil
	case "author":
		return IDAuthor{Author: rest}, nil
	default:
		return UnknownRemark{Raw: raw}, nil
	}
}

func parseOption(fields []string, raw string) (Remark, error) {
	// option name <N> type (check|spin|combo|string|button) [default V] [min N max N] [var L]...
	if len(fields) < 4 || fields[0] != "option" || fields[1] != "name" {
		return nil, &ParseError{Raw: raw, Reason: "option requires a name"}
	}
	i := 2
	var nameParts []string
	for i < len(fields) && fields[i] != "type" {
		nameParts = append(nameParts, fields[i])
		i++
	}
	if i >= len(fields) || len(nameParts) == 0 {
		return nil, &ParseError{Raw: raw, Reason: "option missing type"}
	}
	name := strings.Join(nameParts, " ")
	i++ // consume "type"
	if i >= len(fields) {
		return nil, &ParseError{Raw: raw, Reason: "option missing type value"}
	}
	var typ OptionType
	switch fields[i] {
	case "check":
		typ = OptionCheck
	case "spin":
		typ = OptionSpin
	case "combo":
		typ = OptionCombo
	case "string":
		typ = OptionString
	case "button":
		typ = OptionButton
	default:
		return nil, &ParseError{Raw: raw, Reason: "unknown option type " + fields[i]}
	}
	i++

	info := OptionInfo{Type: typ}
	var defaultParts []string
	inDefault := false
	var vars []string
	for i < len(fields) {
		switch fields[i] {
		case "default":
			inDefault = true
			defaultParts = nil
			i++
		case "min":
			inDefault = false
			i++
			if i < len(fields) {
				info.Min, _ = strconv.ParseInt(fields[i], 10, 64)
				i++
			}
		case "max":
			inDefault = false
			i++
			if i < len(fields) {
				info.Max, _ = strconv.ParseInt(fields[i], 10, 64)
				i++
			}
		case "var":
			inDefault = false
			i++
			var varParts []string
			for i < len(fields) && fields[i] != "var" && fields[i] != "min" && fields[i] != "max" {
				varParts = append(varParts, fields[i])
				i++
			}
			vars = append(vars, strings.Join(varParts, " "))
		default:
			if inDefault {
				defaultParts = append(defaultParts, fields[i])
			}
			i++
		}
	}
	info.Default = strings.Join(defaultParts, " ")
	info.Vars = vars
	return OptionRemark{Name: name, Info: info}, nil
}

func parseInfo(fields []string) Remark {
	info := UciInfo{}
	for i := 1; i < len(fields); i++ {
		switch fields[i] {
		case "depth":
			if v, ok := nextInt(fields, &i); ok {
				info.Depth = &v
			}
		case "seldepth":
			if v, ok := nextInt(fields, &i); ok {
				info.SelDepth = &v
			}
		case "time":
			if v, ok := nextInt(fields, &i); ok {
				info.Time = &v
			}
		case "multipv":
			if v, ok := nextInt(fields, &i); ok {
				info.MultiPV = &v
			}
		case "hashfull":
			if v, ok := nextInt(fields, &i); ok {
				info.HashFull = &v
			}
		case "nodes":
			if v, ok := nextUint(fields, &i); ok {
				info.Nodes = &v
			}
		case "nps":
			if v, ok := nextUint(fields, &i); ok {
				info.NPS = &v
			}
		case "tbhits":
			if v, ok := nextUint(fields, &i); ok {
				info.TBHits = &v
			}
		case "currmove":
			if i+1 < len(fields) {
				i++
				if mv, err := ParseMove(fields[i]); err == nil {
					info.CurrMove = &mv
				}
			}
		case "score":
			i++
			sc := Score{}
			if i < len(fields) {
				switch fields[i] {
				case "cp":
					sc.Kind = ScoreCentipawn
					i++
					if i < len(fields) {
						v, _ := strconv.Atoi(fields[i])
						sc.Value = v
					}
				case "mate":
					sc.Kind = ScoreMate
					i++
					if i < len(fields) {
						v, _ := strconv.Atoi(fields[i])
						sc.Value = v
					}
				default:
					i--
				}
			}
			info.Score = &sc
			// skip optional bound qualifiers (lowerbound/upperbound)
			for i+1 < len(fields) && (fields[i+1] == "lowerbound" || fields[i+1] == "upperbound") {
				i++
			}
		case "pv":
			var pv []board.Move
			for j := i + 1; j < len(fields); j++ {
				mv, err := ParseMove(fields[j])
				if err != nil {
					break
				}
				pv = append(pv, mv)
			}
			info.PV = pv
			i = len(fields)
		case "string":
			rest := strings.Join(fields[i+1:], " ")
			info.String = &rest
			i = len(fields)
		}
	}
	return InfoRemark{Info: info}
}

func nextInt(fields []string, i *int) (int, bool) {
	if *i+1 >= len(fields) {
		return 0, false
	}
	*i++
	v, err := strconv.Atoi(fields[*i])
	return v, err == nil
}

func nextUint(fields []string, i *int) (uint64, bool) {
	if *i+1 >= len(fields) {
		return 0, false
	}
	*i++
	v, err := strconv.ParseUint(fields[*i], 10, 64)
	return v, err == nil
}

func parseBestMove(fields []string, raw string) (Remark, error) {
	if len(fields) < 2 {
		return nil, &ParseError{Raw: raw, Reason: "bestmove requires a move"}
	}
	if fields[1] == "(none)" {
		return BestMoveRemark{}, nil
	}
	mv, err := ParseMove(fields[1])
	if err != nil {
		return nil, &ParseError{Raw: raw, Reason: err.Error()}
	}
	rem := BestMoveRemark{Move: mv}
	if len(fields) >= 4 && fields[2] == "ponder" {
		ponder, err := ParseMove(fields[3])
		if err == nil {
			rem.Ponder = &ponder
		}
	}
	return rem, nil
}
