package cmd

import (
	"fmt"

	"github.com/charmbracelet/combo/internal/config"
	"github.com/spf13/cobra"
)

var dirsCmd = &cobra.Command{
	Use:   "dirs",
	Short: "Print directories used by Combo",
	Long: `Print the directories where Combo reads its configuration and writes its data
files, such as the config set by "combo config set" and the logs.`,
	Example: `
# Print all directories
combo dirs

# Print only the config directory
combo dirs --config

# Print only the data directory
combo dirs --data
  `,
	RunE: func(cmd *cobra.Command, args []string) error {
		configOnly, _ := cmd.Flags().GetBool("config")
		dataOnly, _ := cmd.Flags().GetBool("data")

		if configOnly && dataOnly {
			return fmt.Errorf("cannot specify both --config and --data flags")
		}

		out := cmd.OutOrStdout()
		switch {
		case configOnly:
			fmt.Fprintln(out, config.ConfigDir())
		case dataOnly:
			fmt.Fprintln(out, config.DataDir())
		default:
			fmt.Fprintf(out, "Config directory: %s\n", config.ConfigDir())
			fmt.Fprintf(out, "Data directory:   %s\n", config.DataDir())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dirsCmd)
	dirsCmd.Flags().Bool("config", false, "Print only the config directory")
	dirsCmd.Flags().Bool("data", false, "Print only the data directory")
}
