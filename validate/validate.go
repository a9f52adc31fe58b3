// Command validate checks the board configuration JSON files in a directory
// (configs by default). For each board it checks:
//   - JSON structure, rejecting unknown fields
//   - Board rules: names, players, snakes, ladders and message templates
//   - That tile 100 can be reached from the start square at all
//
// Rules that land on another rule's source are reported but do not fail the
// board, since resolution never chains them.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/snakes-ladders-game/game/engine"
)

var errInvalidBoards = errors.New("some configurations have errors")

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) info(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single board file
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var config engine.BoardConfig
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&config); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	if err := engine.ValidateBoardConfig(&config); err != nil {
		result.fail("%v", err)
		return result
	}

	rules, err := config.RuleTable()
	if err != nil {
		result.fail("%v", err)
		return result
	}

	result.info("✓ Players: %s", strings.Join(config.Players, ", "))
	if len(config.Snakes) == 0 && len(config.Ladders) == 0 {
		result.info("✓ Rules: classic table (%d snakes, %d ladders)",
			engine.CountRuleKind(rules, engine.Snake), engine.CountRuleKind(rules, engine.Ladder))
	} else {
		result.info("✓ Rules: %d snakes, %d ladders",
			engine.CountRuleKind(rules, engine.Snake), engine.CountRuleKind(rules, engine.Ladder))
	}

	for _, t := range engine.ChainedRules(rules) {
		result.info("⚠ %s %d -> %d lands on another rule's source, which will not fire", t.Kind, t.From, t.To)
	}

	if !goalReachable(rules) {
		result.fail("Tile %d cannot be reached from the start square", engine.GoalTile)
	} else {
		result.info("✓ Reachability: tile %d can be reached", engine.GoalTile)
	}

	return result
}

// goalReachable explores every position a player can reach from the start
// square and reports whether any roll from any of them wins.
func goalReachable(rules *engine.RuleTable) bool {
	visited := map[int]bool{engine.StartPosition: true}
	queue := []int{engine.StartPosition}

	for len(queue) > 0 {
		position := queue[0]
		queue = queue[1:]

		for roll := engine.MinRoll; roll <= engine.MaxRoll; roll++ {
			outcome, err := engine.ResolveMove(position, roll, rules)
			if err != nil {
				continue
			}
			if outcome.Kind() == engine.OutcomeWon {
				return true
			}
			next := engine.FinalPosition(outcome, position)
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return false
}

// validateDir validates every *.json file in dir and prints a report to w
func validateDir(w io.Writer, dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return fmt.Errorf("finding config files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no configuration files in %s", dir)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, info := range result.Errors {
				fmt.Fprintln(w, "  "+info)
			}
		} else {
			fmt.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Fprintln(w, "  ❌ "+err)
				}
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if !allValid {
		fmt.Fprintln(w, "❌ Some configurations have errors")
		return errInvalidBoards
	}
	fmt.Fprintln(w, "✅ All configurations are valid!")
	return nil
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Validate board configuration files",
		ArgsUsage: "[dir]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := "configs"
			if cmd.Args().Present() {
				dir = cmd.Args().First()
			}
			return validateDir(cmd.Root().Writer, dir)
		},
	}
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		if !errors.Is(err, errInvalidBoards) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
