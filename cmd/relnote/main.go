// Command relnote turns a git commit range into shareable release notes.
package main

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/drewfead/relnote/internal/app"
	"github.com/drewfead/relnote/internal/browser"
	"github.com/drewfead/relnote/internal/clipboard"
	"github.com/drewfead/relnote/internal/config"
	"github.com/drewfead/relnote/internal/display"
	"github.com/drewfead/relnote/internal/gitx"
	"github.com/drewfead/relnote/internal/logging"
	"github.com/drewfead/relnote/internal/picker"
)

var (
	flagMajorMinor string
	flagYes        bool
)

var rootCmd = &cobra.Command{
	Use:   "relnote [start-ref]",
	Short: "Generate release notes from git history",
	Long: `relnote walks the non-merge commits between a starting reference and
HEAD, links "Tickets:" trailers to your issue tracker, and copies a
markdown release-notes table to the clipboard.

Examples:
  relnote                  # pick the starting commit interactively
  relnote v1.4.0           # everything since the v1.4.0 tag
  relnote -y -m 2.3 HEAD~20`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&flagMajorMinor, "major-minor", "m", "", "Use this major.minor instead of deriving it")
	rootCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Accept the resolved version without asking")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(args []string) error {
	store := config.Store{Root: config.DefaultRoot()}
	settings, err := store.Settings()
	if err != nil {
		return err
	}

	if err := logging.Init(logging.Config{
		Level:     logging.ParseLevel(settings.LogLevel),
		SentryDSN: settings.SentryDSN,
		LogFile:   settings.LogFile,
	}); err != nil {
		return err
	}
	defer logging.Flush(2 * time.Second)

	opts, err := app.OptionsFromArgs(flagMajorMinor, flagYes, args)
	if err != nil {
		return err
	}

	runner := &app.Runner{
		History:   gitx.Repo{},
		Picker:    picker.Terminal{},
		Clipboard: clipboard.System{},
		Browser:   browser.Opener{},
		Renderer:  display.Markdown{},
		Prompter:  app.NewTerminalPrompter(os.Stdin, os.Stderr),
		Config:    store,
		Settings:  settings,
		Log:       logging.With("run_id", uuid.NewString()),
		Out:       os.Stdout,
		Now:       time.Now,
	}
	return runner.Run(opts)
}
