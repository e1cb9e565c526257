// Package commands implements the CLI for the monrun file watcher.
package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.trai.ch/monrun/internal/app"
	"go.trai.ch/monrun/internal/build"
	"go.trai.ch/monrun/internal/core/domain"
)

const rootLong = `monrun polls the given files for modifications and runs a shell
command whenever one of them changes. Changes are detected by
modification time, size, and content checksum.`

// CLI represents the command line interface for monrun.
type CLI struct {
	app     Application
	rootCmd *cobra.Command

	before bool
}

// Application represents the application logic interface.
type Application interface {
	Watch(ctx context.Context, files []string, opts app.WatchOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:           "monrun [flags] FILE...",
		Short:         "Watch files and run a command when they change",
		Long:          rootLong,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return domain.ErrNoFilesSpecified
			}
			command, _ := cmd.Flags().GetString("command")
			interval, _ := cmd.Flags().GetDuration("interval")
			onlyTime, _ := cmd.Flags().GetBool("only-time")
			changeWorkdir, _ := cmd.Flags().GetBool("change-workdir")
			logFormat, _ := cmd.Flags().GetString("log-format")

			return c.app.Watch(cmd.Context(), args, app.WatchOptions{
				Command:       command,
				Before:        c.before,
				Interval:      interval,
				OnlyTime:      onlyTime,
				ChangeWorkdir: changeWorkdir,
				LogFormat:     logFormat,
			})
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.Flags().StringP("command", "c", "", "Shell command to run on change; ${file} expands to the first watched file")
	_ = rootCmd.MarkFlagRequired("command")

	// -b and -a write through to the same field, so the last one given on
	// the command line wins.
	rootCmd.Flags().VarP(newToggle(&c.before, true), "before", "b", "Run the command once before watching")
	rootCmd.Flags().Lookup("before").NoOptDefVal = "true"
	rootCmd.Flags().VarP(newToggle(&c.before, false), "no-before", "a", "Do not run the command before watching (default)")
	rootCmd.Flags().Lookup("no-before").NoOptDefVal = "true"

	rootCmd.Flags().DurationP("interval", "t", time.Second, "Poll interval")
	rootCmd.Flags().Bool("only-time", false, "Detect changes by modification time only, skipping checksums")
	rootCmd.Flags().Bool("change-workdir", true, "Change the working dir to the first watched file's directory")
	rootCmd.Flags().String("log-format", "auto", "Log format: auto, pretty, or json")

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

var _ pflag.Value = (*toggle)(nil)

// toggle is a bool flag that writes a fixed value into a shared target.
// Registering two toggles against the same target gives last-flag-wins
// semantics across a flag pair.
type toggle struct {
	target *bool
	value  bool
}

func newToggle(target *bool, value bool) *toggle {
	return &toggle{target: target, value: value}
}

func (t *toggle) String() string {
	return "false"
}

func (t *toggle) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if v {
		*t.target = t.value
	} else {
		*t.target = !t.value
	}
	return nil
}

func (t *toggle) Type() string {
	return "bool"
}
