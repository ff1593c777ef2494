package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zun-zs/minesweeper/internal/saves"
)

var resumeCmd = &cobra.Command{
	Use:   "resume [NAME]",
	Short: "Resume a saved game, or list saves when no name is given",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runResume,
}

var rmCmd = &cobra.Command{
	Use:   "rm NAME",
	Short: "Delete a saved game",
	Args:  cobra.ExactArgs(1),
	RunE:  runRm,
}

func init() {
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(rmCmd)
}

func runResume(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		defer store.Close()
		return listSaves(store)
	}

	game, err := store.Load(args[0])
	store.Close()
	if errors.Is(err, saves.ErrNotFound) {
		return fmt.Errorf("no save named %q", args[0])
	}
	if err != nil {
		return err
	}
	return runInteractive(game, args[0])
}

func listSaves(store *saves.Store) error {
	infos, err := store.List()
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Println("no saved games")
		return nil
	}
	fmt.Printf("%-20s %-12s %-8s %s\n", "NAME", "SEED", "PHASE", "SAVED")
	for _, info := range infos {
		fmt.Printf("%-20s %-12s %-8s %s\n",
			info.Name, info.Seed, info.Phase,
			info.SavedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runRm(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := store.Load(args[0]); errors.Is(err, saves.ErrNotFound) {
		return fmt.Errorf("no save named %q", args[0])
	} else if err != nil {
		return err
	}
	if err := store.Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted %q\n", args[0])
	return nil
}
