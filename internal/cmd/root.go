// Package cmd implements the goatsession command line.
package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goatkit/goatsession/internal/config"
	"github.com/goatkit/goatsession/internal/session"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// exitFunc allows tests to stub process exit behavior
var exitFunc = os.Exit

// app carries state shared by the subcommands of one invocation.
type app struct {
	cfgFile string
	v       *viper.Viper
	cfg     *config.Config
	sess    *session.Session
	logger  *log.Logger
}

// NewRootCommand builds the command tree operating on sess.
func NewRootCommand(sess *session.Session) *cobra.Command {
	a := &app{sess: sess}

	root := &cobra.Command{
		Use:           "goatsession",
		Short:         "Create and inspect the current user session",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadConfig(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "path to config file (default ./goatsession.yaml or $GOATSESSION_CONFIG)")

	root.AddCommand(
		newLoginCommand(a),
		newServeCommand(a),
		newVersionCommand(),
	)
	return root
}

// loadConfig reads configuration for cmd and applies it to the session.
func (a *app) loadConfig(cmd *cobra.Command) error {
	a.logger = log.New(cmd.ErrOrStderr(), "[GOATSESSION] ", log.LstdFlags)

	v := config.NewViper(a.cfgFile)
	if f := cmd.Flags().Lookup("addr"); f != nil {
		if err := v.BindPFlag("server.addr", f); err != nil {
			return fmt.Errorf("bind --addr: %w", err)
		}
	}
	if err := config.ReadIn(v); err != nil {
		return err
	}
	cfg, err := config.FromViper(v)
	if err != nil {
		return err
	}

	a.v = v
	a.cfg = cfg
	config.Set(cfg)
	configureSession(a.sess, cfg)
	return nil
}

// configureSession applies the session-related settings of cfg to sess.
func configureSession(sess *session.Session, cfg *config.Config) {
	sess.Configure(
		session.WithLoginTimeout(cfg.LoginTimeout()),
		session.WithDebug(cfg.Log.Debug()),
	)
}

// Execute runs the CLI against the process-wide session.
func Execute() {
	execute(NewRootCommand(session.Default()), os.Stderr)
}

func execute(root *cobra.Command, stderr io.Writer) {
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		exitFunc(1)
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "goatsession %s\n", Version)
		},
	}
}
