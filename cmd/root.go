package cmd

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lyind/loopgrab/app"
	"github.com/lyind/loopgrab/capture"
	"github.com/lyind/loopgrab/config"
	"github.com/lyind/loopgrab/debug"
	"github.com/lyind/loopgrab/domain/action"
	"github.com/lyind/loopgrab/domain/game"
	"github.com/lyind/loopgrab/listener"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "loopgrab",
	Short: "Looptap driver",
	Long:  `Watches the screen for the looptap ball and fires the moment it is boxed in.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}

		// Flags override file values only when set explicitly.
		if cmd.Flags().Changed("deadzone") {
			cfg.DeadzoneFrames, _ = cmd.Flags().GetInt("deadzone")
		}
		if cmd.Flags().Changed("tick-ms") {
			cfg.TickIntervalMS, _ = cmd.Flags().GetInt("tick-ms")
		}
		if cmd.Flags().Changed("snapshot") {
			cfg.SnapshotPath, _ = cmd.Flags().GetString("snapshot")
		}
		if cmd.Flags().Changed("debug") {
			cfg.Debug, _ = cmd.Flags().GetBool("debug")
		}
		if cmd.Flags().Changed("no-hotkeys") {
			cfg.DisableHotkeys, _ = cmd.Flags().GetBool("no-hotkeys")
		}
		_ = cfg.Validate()

		level := slog.LevelInfo
		if cfg.Debug {
			level = slog.LevelDebug
		}
		logger := NewLogger(level)

		if write, _ := cmd.Flags().GetBool("write-config"); write {
			if err := cfg.Save(cfgPath); err != nil {
				return err
			}
			logger.Info("config written", "path", cfgPath)
		}

		frame, err := capture.NewScreenFrame(logger)
		if err != nil {
			return err
		}
		width, height := frame.Size()
		logger.Info("screen", "width", width, "height", height)

		controls, err := action.Connect(logger)
		if err != nil {
			return err
		}
		defer controls.Close()

		session, err := game.NewSession(logger, cfg, controls, width, height)
		if err != nil {
			return err
		}
		runner := app.NewRunner(logger, cfg, session, frame)

		if !cfg.DisableHotkeys {
			l := listener.New(logger, runner.Stop)
			go l.Start()
			defer l.Stop()
		}
		if cfg.Debug {
			debug.StartMemLogger(2*time.Second, logger)
			debug.StartGoroutineLogger(time.Second, logger)
		}

		runner.Run()
		return nil
	},
}

// Execute runs the root command. It is called once from main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringP("config", "c", "loopgrab.json", "Config file path")
	rootCmd.Flags().IntP("deadzone", "d", 1, "Minimum frames between fires")
	rootCmd.Flags().Int("tick-ms", 1, "Polling interval in milliseconds")
	rootCmd.Flags().String("snapshot", "no-ball-proof.png", "Diagnostic snapshot path")
	rootCmd.Flags().Bool("debug", false, "Enable debug logging and runtime metrics")
	rootCmd.Flags().Bool("no-hotkeys", false, "Do not install the global F10 stop hook")
	rootCmd.Flags().Bool("write-config", false, "Persist the effective configuration back to the config file")
}
