package main

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zun-zs/minesweeper/internal/saves"
	"github.com/zun-zs/minesweeper/internal/solver"
)

var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Play minesweeper in your terminal",
	Long: `Play minesweeper in your terminal.

Examples:
  sweep play
  sweep play --preset hard
  sweep play --width 30 --height 20 --mines 120 --name evening
  sweep resume evening
  sweep bench -n 1000 --preset hard`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().String("save-file", "", "path to the save database (default ~/.sweep/saves.db)")
	rootCmd.PersistentFlags().String("log-file", "", "append logs to a rotated file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	viper.BindPFlag("save_file", rootCmd.PersistentFlags().Lookup("save-file"))
	viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// setup wires config sources and the logger before any command runs.
// Flags win over SWEEP_* env variables, which win over an optional
// .sweep.yaml in the home directory or the working directory.
func setup(cmd *cobra.Command, args []string) error {
	viper.SetEnvPrefix("sweep")
	viper.AutomaticEnv()

	viper.SetConfigName(".sweep")
	viper.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetDefault("save_file", filepath.Join(home, ".sweep", "saves.db"))
	} else {
		viper.SetDefault("save_file", "saves.db")
	}
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)
	if viper.GetBool("verbose") {
		log.SetLevel(logrus.DebugLevel)
	}
	solver.Log = log

	if logFile := viper.GetString("log_file"); logFile != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   logFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Level:      logrus.DebugLevel,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			return err
		}
		log.AddHook(hook)
	}

	return nil
}

// openStore opens the save database, creating its directory first.
func openStore() (*saves.Store, error) {
	path := viper.GetString("save_file")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return saves.Open(path)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
