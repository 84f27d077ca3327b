// Command arbiterctl runs one match between two roster engines from the
// command line and prints each best move and the final winner to
// stdout, grounded on original_source/cozy-cli/src/main.rs's RunGame
// subcommand and its println!-based event loop.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/chess-backend/uci-arbiter/configs"
	"github.com/chess-backend/uci-arbiter/internal/rosterengine"
	"github.com/chess-backend/uci-arbiter/pkg/analysis"
	"github.com/chess-backend/uci-arbiter/pkg/board"
	"github.com/chess-backend/uci-arbiter/pkg/clock"
	"github.com/chess-backend/uci-arbiter/pkg/game"
	"github.com/chess-backend/uci-arbiter/pkg/match"
	"github.com/chess-backend/uci-arbiter/pkg/timecontrol"
)

func main() {
	if len(os.Args) < 2 || os.Args[1] != "run-game" {
		fmt.Fprintln(os.Stderr, "usage: arbiterctl run-game --white <nickname> --black <nickname> --tc <time+inc> [--config <roster.json>]")
		os.Exit(2)
	}

	fs := flag.NewFlagSet("run-game", flag.ExitOnError)
	white := fs.String("white", "", "white engine nickname from the roster")
	black := fs.String("black", "", "black engine nickname from the roster")
	tc := fs.String("tc", "", "time control, e.g. 300+2")
	rosterPath := fs.String("config", "cozy-cli-config.json", "engine roster JSON file")
	if err := fs.Parse(os.Args[2:]); err != nil {
		os.Exit(2)
	}
	if *white == "" || *black == "" || *tc == "" {
		fmt.Fprintln(os.Stderr, "run-game requires --white, --black and --tc")
		os.Exit(2)
	}

	logrus.SetFormatter(&logrus.TextFormatter{})
	log := logrus.NewEntry(logrus.StandardLogger())

	timeControl, err := timecontrol.Parse(*tc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --tc: %v\n", err)
		os.Exit(1)
	}

	roster, err := configs.LoadEngineRoster(*rosterPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load roster: %v\n", err)
		os.Exit(1)
	}

	if err := runGame(roster, *white, *black, timeControl, log); err != nil {
		fmt.Fprintf(os.Stderr, "run-game failed: %v\n", err)
		os.Exit(1)
	}
}

func runGame(roster configs.EngineRoster, whiteNick, blackNick string, tc timecontrol.TimeControl, log *logrus.Entry) error {
	ctx := context.Background()

	if _, ok := roster[whiteNick]; !ok {
		return fmt.Errorf("no such engine in roster: %q", whiteNick)
	}
	if _, ok := roster[blackNick]; !ok {
		return fmt.Errorf("no such engine in roster: %q", blackNick)
	}

	whiteEngine, err := rosterengine.Spawn(ctx, roster, whiteNick, log.WithField("engine", whiteNick))
	if err != nil {
		return err
	}
	defer whiteEngine.Close()

	blackEngine, err := rosterengine.Spawn(ctx, roster, blackNick, log.WithField("engine", blackNick))
	if err != nil {
		return err
	}
	defer blackEngine.Close()

	cfg := match.Config{
		White: match.SideConfig{Clock: clock.NewClock(tc)},
		Black: match.SideConfig{Clock: clock.NewClock(tc)},
	}
	g := game.New(board.StartingBoard())
	m := match.New(cfg, g, whiteEngine, blackEngine)

	for raw := range m.Run(ctx) {
		switch ev := raw.(type) {
		case match.Event:
			if ev.Kind == match.EventAnalysis && ev.AnalysisEvent.Kind == analysis.EventBestMove {
				fmt.Printf("%s: %s\n", colorName(ev.Engine), ev.AnalysisEvent.BestMove)
			}
			if ev.Kind == match.EventGameOver {
				if ev.Winner == nil {
					fmt.Println("winner: draw")
				} else {
					fmt.Printf("winner: %s\n", colorName(*ev.Winner))
				}
			}
		case *match.Error:
			return ev
		}
	}
	return nil
}

func colorName(c board.Color) string {
	if c == board.White {
		return "white"
	}
	return "black"
}
