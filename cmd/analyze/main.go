// Command analyze prints quick, human-readable heuristics about the boards in
// the configs directory. It summarizes players, snake and ladder counts, the
// net tiles the rules hand out, rules that land on another rule's source, and a
// seeded Monte Carlo estimate of how many turns a lone player needs to finish.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/snakes-ladders-game/game/config"
	"github.com/wricardo/snakes-ladders-game/game/dice"
	"github.com/wricardo/snakes-ladders-game/game/engine"
)

// turnCap stops a simulated game that has not finished by then
const turnCap = 1000

// BoardReport is the analysis of a single board
type BoardReport struct {
	ConfigID    string
	Name        string
	Description string
	Players     int
	Snakes      int
	Ladders     int
	NetGain     int
	Chained     []engine.Transition
	Simulation  Simulation
}

// Simulation summarizes solo games played on a board
type Simulation struct {
	Games      int
	MeanTurns  float64
	MinTurns   int
	MaxTurns   int
	Unfinished int
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Summarize board configurations",
		ArgsUsage: "[board ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config-dir", Value: "configs", Usage: "Directory containing board configurations"},
			&cli.IntFlag{Name: "games", Value: 1000, Usage: "Simulated games per board"},
			&cli.Int64Flag{Name: "seed", Value: 1, Usage: "Dice seed for the simulation"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			manager, err := config.NewManager(cmd.String("config-dir"))
			if err != nil {
				return err
			}

			ids := cmd.Args().Slice()
			if len(ids) == 0 {
				infos, err := manager.ListConfigs()
				if err != nil {
					return err
				}
				for _, info := range infos {
					ids = append(ids, info.ConfigID)
				}
				sort.Strings(ids)
			}

			for _, id := range ids {
				board, err := manager.LoadConfig(id)
				if err != nil {
					fmt.Fprintf(cmd.Root().Writer, "\n=== Analyzing %s ===\nError: %v\n", id, err)
					continue
				}
				report, err := analyzeBoard(id, board, cmd.Int("games"), dice.New(cmd.Int64("seed")))
				if err != nil {
					return err
				}
				writeReport(cmd.Root().Writer, report)
			}
			return nil
		},
	}
}

// analyzeBoard builds the report for one board
func analyzeBoard(id string, board *engine.BoardConfig, games int, roller dice.Roller) (BoardReport, error) {
	rules, err := board.RuleTable()
	if err != nil {
		return BoardReport{}, fmt.Errorf("board %s: %w", id, err)
	}

	sim, err := simulate(rules, games, roller)
	if err != nil {
		return BoardReport{}, fmt.Errorf("board %s: %w", id, err)
	}

	return BoardReport{
		ConfigID:    id,
		Name:        board.Name,
		Description: board.Description,
		Players:     len(board.Players),
		Snakes:      engine.CountRuleKind(rules, engine.Snake),
		Ladders:     engine.CountRuleKind(rules, engine.Ladder),
		NetGain:     engine.NetRuleGain(rules),
		Chained:     engine.ChainedRules(rules),
		Simulation:  sim,
	}, nil
}

// simulate plays games solo games and counts the turns each takes to land on 100
func simulate(rules *engine.RuleTable, games int, roller dice.Roller) (Simulation, error) {
	sim := Simulation{Games: games}
	if games <= 0 {
		return sim, nil
	}

	finished, total := 0, 0
	for g := 0; g < games; g++ {
		turns, ok, err := playSolo(rules, roller)
		if err != nil {
			return Simulation{}, err
		}
		if !ok {
			sim.Unfinished++
			continue
		}

		if finished == 0 || turns < sim.MinTurns {
			sim.MinTurns = turns
		}
		if turns > sim.MaxTurns {
			sim.MaxTurns = turns
		}
		finished++
		total += turns
	}

	if finished > 0 {
		sim.MeanTurns = float64(total) / float64(finished)
	}
	return sim, nil
}

func playSolo(rules *engine.RuleTable, roller dice.Roller) (turns int, won bool, err error) {
	position := engine.StartPosition
	for turns < turnCap {
		turns++
		outcome, err := engine.ResolveMove(position, roller.Roll(), rules)
		if err != nil {
			return turns, false, err
		}
		if outcome.Kind() == engine.OutcomeWon {
			return turns, true, nil
		}
		position = engine.FinalPosition(outcome, position)
	}
	return turns, false, nil
}

func writeReport(w io.Writer, r BoardReport) {
	fmt.Fprintf(w, "\n=== Analyzing %s ===\n", r.ConfigID)
	fmt.Fprintf(w, "Name: %s\n", r.Name)
	fmt.Fprintf(w, "Description: %s\n", r.Description)
	fmt.Fprintf(w, "Players: %d\n", r.Players)
	fmt.Fprintf(w, "Snakes: %d\n", r.Snakes)
	fmt.Fprintf(w, "Ladders: %d\n", r.Ladders)
	fmt.Fprintf(w, "Net tiles from rules: %+d\n", r.NetGain)

	if len(r.Chained) > 0 {
		fmt.Fprintf(w, "⚠️  WARNING: %d rules end on another rule's source (it will not fire)\n", len(r.Chained))
		for _, t := range r.Chained {
			fmt.Fprintf(w, "   %s %d -> %d\n", t.Kind, t.From, t.To)
		}
	} else {
		fmt.Fprintf(w, "✅ No chained rules\n")
	}

	s := r.Simulation
	if s.Games == 0 {
		return
	}
	fmt.Fprintf(w, "Solo games: %d, turns to finish: mean %.1f, min %d, max %d\n", s.Games, s.MeanTurns, s.MinTurns, s.MaxTurns)
	if s.Unfinished > 0 {
		fmt.Fprintf(w, "⚠️  WARNING: %d games did not finish within %d turns\n", s.Unfinished, turnCap)
	}
}
