package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/combo/internal/config"
	"github.com/charmbracelet/combo/internal/log"
	"github.com/charmbracelet/combo/internal/options"
	"github.com/charmbracelet/combo/internal/tui"
	"github.com/charmbracelet/combo/internal/version"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
)

var errNoOptions = errors.New("no options: pass a file or pipe options on stdin")

func init() {
	rootCmd.PersistentFlags().StringP("cwd", "c", "", "Current working directory")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")
	rootCmd.PersistentFlags().StringP("format", "f", "", "Options format (json, yaml, lines), inferred from the file extension by default")

	rootCmd.Flags().BoolP("help", "h", false, "Help")
	rootCmd.Flags().String("value", "", "Value selected when the picker opens")
	rootCmd.Flags().BoolP("watch", "w", false, "Reload the options file when it changes")
	rootCmd.Flags().StringP("placeholder", "p", "", "Filter input placeholder")
}

var rootCmd = &cobra.Command{
	Use:   "combo [file]",
	Short: "Pick an option from a list in the terminal",
	Long: `Combo shows a filterable list of options and prints the value of the one you choose.
Options come from a JSON, YAML or plain text file, or from stdin. Long lists are
rendered through a window, only the rows near the viewport are drawn.`,
	Example: `
# Pick a line from stdin
ls | combo

# Pick from a grouped YAML file, starting on a value
combo options.yaml --value staging

# Keep the list in sync with the file
combo options.json --watch

# Run with debug logging
combo -d options.json
  `,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setupConfig(cmd)
		if err != nil {
			return err
		}
		format, err := formatFlag(cmd)
		if err != nil {
			return err
		}
		opts, err := readOptions(args, format)
		if err != nil {
			return err
		}

		value, _ := cmd.Flags().GetString("value")
		if placeholder, _ := cmd.Flags().GetString("placeholder"); placeholder != "" {
			cfg.Options.Placeholder = placeholder
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		model := tui.New(cfg, opts, value)
		programOpts := []tea.ProgramOption{
			tea.WithContext(ctx),
			tea.WithOutput(os.Stderr),
		}
		if !term.IsTerminal(os.Stdin.Fd()) {
			tty, err := openTTY()
			if err != nil {
				return fmt.Errorf("failed to open terminal: %w", err)
			}
			defer tty.Close()
			programOpts = append(programOpts, tea.WithInput(tty))
		}
		if cfg.Options.Mouse {
			programOpts = append(programOpts, tea.WithMouseCellMotion())
		}
		program := tea.NewProgram(model, programOpts...)

		if watch, _ := cmd.Flags().GetBool("watch"); watch {
			if len(args) == 0 {
				return fmt.Errorf("--watch needs an options file")
			}
			go func() {
				defer log.RecoverPanic("watch", nil)
				err := options.Watch(ctx, args[0], format, func(opts []options.Option, err error) {
					program.Send(tui.OptionsLoadedMsg{Options: opts, Err: err})
				})
				if err != nil {
					slog.Error("Failed to watch options", "error", err)
				}
			}()
		}

		final, err := program.Run()
		if err != nil {
			slog.Error("TUI run error", "error", err)
			return fmt.Errorf("TUI error: %v", err)
		}
		chosen, err := final.(*tui.Model).Result()
		if err != nil {
			return err
		}
		slog.Debug("Option chosen", "id", chosen.ID, "value", chosen.Value)
		fmt.Fprintln(cmd.OutOrStdout(), chosen.Value)
		return nil
	},
}

func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version.Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

func setupConfig(cmd *cobra.Command) (*config.Config, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	cwd, err := ResolveCwd(cmd)
	if err != nil {
		return nil, err
	}
	return config.Load(cwd, debug)
}

func formatFlag(cmd *cobra.Command) (options.Format, error) {
	name, _ := cmd.Flags().GetString("format")
	return options.ParseFormat(name)
}

// readOptions loads the options from the file in args, or from stdin when
// it is not a terminal.
func readOptions(args []string, format options.Format) ([]options.Option, error) {
	if len(args) > 0 {
		return options.Load(args[0], format)
	}
	stdin, err := pipedStdin()
	if err != nil {
		return nil, err
	}
	if stdin == nil {
		return nil, errNoOptions
	}
	opts, err := options.Decode(stdin, format)
	if err != nil {
		return nil, fmt.Errorf("failed to read options from stdin: %w", err)
	}
	return opts, nil
}

func pipedStdin() (io.Reader, error) {
	if term.IsTerminal(os.Stdin.Fd()) {
		return nil, nil
	}
	fi, err := os.Stdin.Stat()
	if err != nil {
		return nil, err
	}
	if fi.Mode()&os.ModeNamedPipe == 0 && !fi.Mode().IsRegular() {
		return nil, nil
	}
	return os.Stdin, nil
}

func openTTY() (*os.File, error) {
	if runtime.GOOS == "windows" {
		return os.Open("CONIN$")
	}
	return os.Open("/dev/tty")
}

func ResolveCwd(cmd *cobra.Command) (string, error) {
	cwd, _ := cmd.Flags().GetString("cwd")
	if cwd != "" {
		err := os.Chdir(cwd)
		if err != nil {
			return "", fmt.Errorf("failed to change directory: %v", err)
		}
		return cwd, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %v", err)
	}
	return cwd, nil
}
