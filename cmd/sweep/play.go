package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zun-zs/minesweeper/internal/mines"
	"github.com/zun-zs/minesweeper/internal/solver"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a new game",
	RunE:  runPlay,
}

// addBoardFlags registers the board-selection flags shared by play
// and bench.
func addBoardFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("preset", "p", "medium", "board preset: easy, medium or hard")
	cmd.Flags().IntP("width", "W", 0, "board width")
	cmd.Flags().IntP("height", "H", 0, "board height")
	cmd.Flags().IntP("mines", "m", 0, "mine count")
	cmd.Flags().StringP("seed", "s", "", `board seed like "16x16/40"`)
}

func init() {
	addBoardFlags(playCmd)
	playCmd.Flags().StringP("name", "n", "", "save slot for this game")
	rootCmd.AddCommand(playCmd)
}

func resolveParams(cmd *cobra.Command) (mines.GameParams, error) {
	if seed, _ := cmd.Flags().GetString("seed"); seed != "" {
		return mines.ParseSeed(seed)
	}

	if cmd.Flags().Changed("width") ||
		cmd.Flags().Changed("height") ||
		cmd.Flags().Changed("mines") {
		width, _ := cmd.Flags().GetInt("width")
		height, _ := cmd.Flags().GetInt("height")
		mineCount, _ := cmd.Flags().GetInt("mines")
		params := mines.GameParams{
			Width: width, Height: height, MineCount: mineCount,
		}.Clamp()
		return params, nil
	}

	preset, _ := cmd.Flags().GetString("preset")
	params, ok := mines.PresetParams(preset)
	if !ok {
		return mines.GameParams{}, fmt.Errorf("unknown preset %q", preset)
	}
	return params, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	params, err := resolveParams(cmd)
	if err != nil {
		return err
	}

	game, err := mines.NewGame(params, nil)
	if err != nil {
		return err
	}

	slot, _ := cmd.Flags().GetString("name")
	return runInteractive(game, slot)
}

func render(game *mines.Game) {
	view := game.PlayerView()
	var b strings.Builder
	fmt.Fprintf(&b, "%s  flags %d/%d\n   ", game, game.FlagCount(), game.MineCount)
	for col := range game.Width {
		fmt.Fprintf(&b, "%d ", col%10)
	}
	b.WriteString("\n")
	for row := range game.Height {
		fmt.Fprintf(&b, "%2d ", row)
		for col := range game.Width {
			b.WriteString(view[row*game.Width+col].String() + " ")
		}
		b.WriteString("\n")
	}
	fmt.Print(b.String())
}

const playHelp = `commands:
  o ROW COL   open a cell
  f ROW COL   cycle flag > question > none
  c ROW COL   chord an open number
  h           show forced moves
  g           redraw the board
  r           reset the board
  save [NAME] save the game
  q           quit (saves when a slot is set)`

func parseRowCol(fields []string) (int, int, error) {
	if len(fields) != 3 {
		return 0, 0, errors.New("expected ROW and COL arguments")
	}
	row, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, errors.New("ROW must be an int")
	}
	col, err := strconv.Atoi(fields[2])
	if err != nil {
		return 0, 0, errors.New("COL must be an int")
	}
	return row, col, nil
}

func saveGame(game *mines.Game, slot string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Put(slot, game); err != nil {
		return err
	}
	fmt.Printf("saved as %q\n", slot)
	return nil
}

func runInteractive(game *mines.Game, slot string) error {
	var startedAt time.Time
	if game.Phase == mines.PhasePlaying {
		// Resumed mid-game; count playtime from here.
		startedAt = time.Now()
	}

	render(game)
	fmt.Println(`type ? for help`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "o", "f", "c":
			row, col, err := parseRowCol(fields)
			if err != nil {
				fmt.Println(err)
				continue
			}
			phaseBefore := game.Phase
			outcome, err := applyMove(game, fields[0], row, col)
			if err != nil {
				fmt.Println(err)
				continue
			}
			if phaseBefore == mines.PhaseNotStarted && game.Phase != mines.PhaseNotStarted {
				startedAt = time.Now()
			}
			render(game)
			reportOutcome(game, outcome, startedAt)

		case "h":
			if game.Phase.Terminal() {
				fmt.Println("game over")
				continue
			}
			hints := solver.New(game.PlayerView(), game.GameParams).Hints()
			if len(hints) == 0 {
				fmt.Println("no forced moves")
				continue
			}
			for _, hint := range hints {
				fmt.Printf("%s %d %d\n", hint.Action, hint.Row, hint.Col)
			}

		case "g":
			render(game)

		case "r":
			game.Reset()
			startedAt = time.Time{}
			render(game)

		case "save":
			name := slot
			if len(fields) > 1 {
				name = fields[1]
			}
			if name == "" {
				fmt.Println("no save slot; use: save NAME")
				continue
			}
			if err := saveGame(game, name); err != nil {
				fmt.Println("save failed:", err)
				continue
			}
			slot = name

		case "q", "quit", "exit":
			if slot != "" {
				return saveGame(game, slot)
			}
			return nil

		case "?", "help":
			fmt.Println(playHelp)

		default:
			fmt.Printf("unknown command %q (type ? for help)\n", fields[0])
		}
	}
	return scanner.Err()
}

func applyMove(game *mines.Game, op string, row, col int) (mines.Outcome, error) {
	switch op {
	case "o":
		result, err := game.Reveal(row, col)
		if err != nil {
			return mines.Ignored, err
		}
		log.WithFields(logrus.Fields{
			"row": row, "col": col, "outcome": result.Outcome.String(),
			"changed": len(result.Changed),
		}).Debug("open")
		return result.Outcome, nil
	case "f":
		mark, accepted, err := game.ToggleMark(row, col)
		if err != nil {
			return mines.Ignored, err
		}
		if !accepted {
			return mines.Ignored, nil
		}
		fmt.Printf("%d:%d %s\n", row, col, mark)
		return mines.Continued, nil
	case "c":
		result, err := game.ChordReveal(row, col)
		if err != nil {
			return mines.Ignored, err
		}
		return result.Outcome, nil
	}
	return mines.Ignored, fmt.Errorf("unknown move %q", op)
}

func reportOutcome(game *mines.Game, outcome mines.Outcome, startedAt time.Time) {
	playtime := time.Since(startedAt).Round(time.Millisecond * 10)
	switch outcome {
	case mines.Won:
		fmt.Printf("you won in %s\n", playtime)
	case mines.Lost:
		fmt.Printf("BOOM. you lost in %s\n", playtime)
		log.Debug("final board\n" + game.PlayerView().ToString(game.Width))
	}
}
