package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/combo/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the Combo configuration",
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration option",
	Long: `Write an option to the global data config. Values are read as JSON when they
parse, as strings otherwise. Keys are relative to "options" unless they say so.`,
	Example: heredoc.Doc(`
# Render three items past the viewport edges
combo config set overscan 3

# Show descriptions on two lines in the terminal
combo config set terminal_policy.description_delta 2

# Change the filter placeholder
combo config set options.placeholder "Pick one"
	`),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setupConfig(cmd)
		if err != nil {
			return err
		}
		key := configKey(args[0])
		if err := cfg.SetConfigField(key, parseConfigValue(args[1])); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s in %s\n", key, config.GlobalConfigData())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func configKey(key string) string {
	key = strings.TrimSpace(key)
	if strings.HasPrefix(key, "options.") {
		return key
	}
	return "options." + key
}

func parseConfigValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}
