package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/yuzuha/screenscribe/internal/core/pomodoro"
	"github.com/yuzuha/screenscribe/internal/util"
)

var sessionMode string

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Log focus sessions consumed by the report",
}

var focusStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Begin a session",
	RunE: func(cmd *cobra.Command, args []string) error {
		initLogging()
		tracker := pomodoro.NewTracker(expandPath(focusLogPath))
		if err := tracker.Start(sessionMode); err != nil {
			return err
		}
		fmt.Printf("%s session started\n", sessionMode)
		return nil
	},
}

var focusStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "End the running session",
	RunE: func(cmd *cobra.Command, args []string) error {
		initLogging()
		tracker := pomodoro.NewTracker(expandPath(focusLogPath))
		session, err := tracker.Stop()
		if err != nil {
			return err
		}
		fmt.Printf("%s session logged: %s (%s)\n",
			session.Mode,
			session.Start.Format("15:04"),
			util.FormatDuration(session.End.Sub(session.Start)))
		return nil
	},
}

var focusRateCmd = &cobra.Command{
	Use:   "rate <score>",
	Short: "Score the last session from 1 to 10",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		initLogging()
		score, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("score must be a number, got %q", args[0])
		}
		tracker := pomodoro.NewTracker(expandPath(focusLogPath))
		if err := tracker.Rate(score); err != nil {
			return err
		}
		fmt.Printf("Session rated %d/10\n", score)
		return nil
	},
}

var focusStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running session, if any",
	RunE: func(cmd *cobra.Command, args []string) error {
		initLogging()
		tracker := pomodoro.NewTracker(expandPath(focusLogPath))
		start, mode, ok := tracker.Active()
		if !ok {
			fmt.Println("No session running")
			return nil
		}
		fmt.Printf("%s session running since %s (%s elapsed)\n",
			mode, start.Format("15:04"), util.FormatDuration(time.Since(start)))
		return nil
	},
}

func init() {
	focusStartCmd.Flags().StringVar(&sessionMode, "mode", pomodoro.ModeFocus,
		"Session mode (Focus, Break)")

	focusCmd.AddCommand(focusStartCmd, focusStopCmd, focusRateCmd, focusStatusCmd)
	rootCmd.AddCommand(focusCmd)
}
