package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate <topic>",
	Short: "Generate one batch of questions and print it as JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context(), cmd, os.Stderr)
		if err != nil {
			return err
		}
		defer a.Close()

		body, err := json.Marshal(map[string]string{"topic": strings.Join(args, " ")})
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		req, verr := a.validator.Parse(body)
		if verr != nil {
			return verr
		}

		batch, err := a.gateway.Generate(cmd.Context(), req)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(batch)
	},
}
