package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/combo/internal/config"
	"github.com/charmbracelet/combo/internal/options"
	"github.com/charmbracelet/combo/internal/window"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type layoutParams struct {
	Offset   int
	Height   int
	Overscan int
	Terminal bool
	Value    string
}

type layoutViewport struct {
	Offset   int `json:"offset" yaml:"offset"`
	Height   int `json:"height" yaml:"height"`
	Overscan int `json:"overscan" yaml:"overscan"`
}

type layoutRange struct {
	First        int `json:"first" yaml:"first"`
	Last         int `json:"last" yaml:"last"`
	VisibleFirst int `json:"visible_first" yaml:"visible_first"`
	VisibleLast  int `json:"visible_last" yaml:"visible_last"`
}

type layoutSelection struct {
	Value    string `json:"value" yaml:"value"`
	Index    int    `json:"index" yaml:"index"`
	Scrolled bool   `json:"scrolled" yaml:"scrolled"`
}

type layoutRow struct {
	Index    int    `json:"index" yaml:"index"`
	Kind     string `json:"kind" yaml:"kind"`
	Offset   int    `json:"offset" yaml:"offset"`
	Height   int    `json:"height" yaml:"height"`
	Label    string `json:"label" yaml:"label"`
	Rendered bool   `json:"rendered" yaml:"rendered"`
}

type layoutReport struct {
	Policy      string           `json:"policy" yaml:"policy"`
	Items       int              `json:"items" yaml:"items"`
	TotalHeight int              `json:"total_height" yaml:"total_height"`
	Estimate    int              `json:"estimate" yaml:"estimate"`
	Viewport    layoutViewport   `json:"viewport" yaml:"viewport"`
	Selection   *layoutSelection `json:"selection,omitempty" yaml:"selection,omitempty"`
	Range       *layoutRange     `json:"range,omitempty" yaml:"range,omitempty"`
	Rows        []layoutRow      `json:"rows" yaml:"rows"`
}

func init() {
	layoutCmd.Flags().Int("offset", 0, "Scroll offset of the viewport")
	layoutCmd.Flags().Int("height", 0, "Viewport height, estimated from the items when 0")
	layoutCmd.Flags().Int("overscan", -1, "Items rendered outside the viewport, from the config when negative")
	layoutCmd.Flags().BoolP("terminal", "t", false, "Use terminal cells instead of pixels")
	layoutCmd.Flags().String("value", "", "Scroll the selected value into view first")
	layoutCmd.Flags().StringP("output", "o", "text", "Output format (text, json, yaml)")
	rootCmd.AddCommand(layoutCmd)
}

var layoutCmd = &cobra.Command{
	Use:   "layout [file]",
	Short: "Print how a list of options is laid out",
	Long: `Print the height table of a list of options: the offset and height of every
item, the estimated list height and the range of items a viewport renders.`,
	Example: heredoc.Doc(`
# Lay out a file with the pixel policy
combo layout options.yaml

# Scroll a 10 cell terminal viewport to a value
combo layout options.yaml --terminal --height 10 --value staging

# Machine readable output
cat options.txt | combo layout -o json
	`),
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

		var params layoutParams
		params.Offset, _ = cmd.Flags().GetInt("offset")
		params.Height, _ = cmd.Flags().GetInt("height")
		params.Overscan, _ = cmd.Flags().GetInt("overscan")
		params.Terminal, _ = cmd.Flags().GetBool("terminal")
		params.Value, _ = cmd.Flags().GetString("value")
		output, _ := cmd.Flags().GetString("output")

		report := buildLayout(cfg, opts, params)
		return formatLayout(cmd.OutOrStdout(), report, output)
	},
}

func buildLayout(cfg *config.Config, opts []options.Option, params layoutParams) layoutReport {
	overscan := params.Overscan
	if overscan < 0 {
		overscan = cfg.Overscan()
	}
	policyName := "pixels"
	if params.Terminal {
		policyName = "terminal"
	}
	policy := cfg.Policy(params.Terminal)

	items := options.Items(opts)
	w := window.New(
		window.WithPolicy(policy),
		window.WithOverscan(overscan),
		window.WithHeight(params.Height),
	)
	w.SetCollection(window.NewCollection(items))
	w.ScrollTo(params.Offset)

	report := layoutReport{
		Policy:      policyName,
		Items:       len(items),
		TotalHeight: w.TotalHeight(),
		Estimate:    window.EstimateHeight(policy, items),
	}
	if params.Value != "" {
		_, scrolled := w.Select(params.Value)
		report.Selection = &layoutSelection{
			Value:    params.Value,
			Index:    w.Collection().IndexOfValue(params.Value),
			Scrolled: scrolled,
		}
	}

	vp := w.Viewport()
	report.Viewport = layoutViewport{
		Offset:   vp.Offset,
		Height:   vp.Height,
		Overscan: vp.Overscan,
	}
	rng := w.Range()
	if !rng.Empty() {
		report.Range = &layoutRange{
			First:        rng.First,
			Last:         rng.Last,
			VisibleFirst: rng.VisibleFirst,
			VisibleLast:  rng.VisibleLast,
		}
	}

	table := w.Table()
	report.Rows = make([]layoutRow, 0, len(items))
	for i, item := range items {
		report.Rows = append(report.Rows, layoutRow{
			Index:    i,
			Kind:     item.Kind.String(),
			Offset:   table.Offset(i),
			Height:   table.Height(i),
			Label:    item.Label,
			Rendered: rng.Contains(i),
		})
	}
	return report
}

func formatLayout(w io.Writer, report layoutReport, format string) error {
	switch strings.ToLower(format) {
	case "json":
		return formatLayoutJSON(w, report)
	case "yaml":
		return formatLayoutYAML(w, report)
	case "text", "":
		return formatLayoutText(w, report)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func formatLayoutJSON(w io.Writer, report layoutReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func formatLayoutYAML(w io.Writer, report layoutReport) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	fmt.Fprint(w, string(data))
	return nil
}

func formatLayoutText(w io.Writer, report layoutReport) error {
	fmt.Fprintf(w, "Policy:    %s\n", report.Policy)
	fmt.Fprintf(w, "Items:     %d\n", report.Items)
	fmt.Fprintf(w, "Total:     %d\n", report.TotalHeight)
	fmt.Fprintf(w, "Estimate:  %d\n", report.Estimate)
	fmt.Fprintf(w, "Viewport:  offset %d, height %d, overscan %d\n",
		report.Viewport.Offset, report.Viewport.Height, report.Viewport.Overscan)
	if report.Selection != nil {
		fmt.Fprintf(w, "Selected:  %q at index %d\n", report.Selection.Value, report.Selection.Index)
	}
	if report.Range == nil {
		fmt.Fprintln(w, "Range:     empty")
		return nil
	}
	fmt.Fprintf(w, "Range:     %d-%d (visible %d-%d)\n",
		report.Range.First, report.Range.Last, report.Range.VisibleFirst, report.Range.VisibleLast)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %5s  %-6s  %6s  %6s  %s\n", "INDEX", "KIND", "OFFSET", "HEIGHT", "LABEL")
	for _, row := range report.Rows {
		mark := " "
		if row.Rendered {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %5d  %-6s  %6d  %6d  %s\n", mark, row.Index, row.Kind, row.Offset, row.Height, row.Label)
	}
	return nil
}
