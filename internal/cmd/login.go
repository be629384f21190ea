package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goatkit/goatsession/internal/api"
	"github.com/goatkit/goatsession/internal/guest"
)

const (
	outputYAML = "yaml"
	outputJSON = "json"
)

func newLoginCommand(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "login NAME",
		Short: "Log a guest user in and print the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != outputYAML && output != outputJSON {
				return fmt.Errorf("unsupported --output %q (want %s or %s)", output, outputYAML, outputJSON)
			}

			user := guest.New(args[0], a.logger)
			if err := a.sess.Create(cmd.Context(), user); err != nil {
				return fmt.Errorf("login %q: %w", args[0], err)
			}
			return writeView(cmd.OutOrStdout(), output, api.NewSessionView(a.sess.Snapshot()))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputYAML, "output format: yaml or json")
	return cmd
}

func writeView(w io.Writer, format string, view api.SessionView) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return err
		}
		return enc.Close()
	}
}
