package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"flowterm/flowchart"
)

var (
	flagConfigDir string
	flagDebug     bool

	exportScale   float64
	exportPadding float64
	exportGrid    bool

	cfg    *Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "flowterm [chart]",
	Short: "flowterm is a terminal flowchart editor",
	Long: `flowterm edits flowcharts made of terminators, process boxes, decision
diamonds, connectors, I/O parallelograms, labels and linkable lines.

Run without arguments to get the start menu, or pass a chart to open it.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir := flagConfigDir
		if dir == "" {
			dir = defaultConfigDir()
		}
		c, err := loadConfig(dir)
		if err != nil {
			return err
		}
		cfg = c
		l, err := newLogger(dir, flagDebug)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runEditor,
}

var exportCmd = &cobra.Command{
	Use:   "export <chart> <image.png>",
	Short: "Render a chart to a PNG image",
	Args:  cobra.ExactArgs(2),
	RunE:  runExport,
}

var listCmd = &cobra.Command{
	Use:   "list <chart>",
	Short: "Print the entities and links of a chart",
	Args:  cobra.ExactArgs(1),
	RunE:  runList,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/flowterm)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "log at debug level")

	exportCmd.Flags().Float64Var(&exportScale, "scale", 1, "pixels per document unit")
	exportCmd.Flags().Float64Var(&exportPadding, "padding", 16, "blank margin around the chart, in document units")
	exportCmd.Flags().BoolVar(&exportGrid, "grid", false, "draw the grid behind the chart")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(listCmd)
}

func runEditor(cmd *cobra.Command, args []string) error {
	m := initialModel(cfg, logger, systemClipboard{})
	if len(args) == 1 {
		if err := m.openFile(args[0], false); err != nil {
			return err
		}
	}
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	return nil
}

func loadChart(path string) (*flowchart.Document, error) {
	doc := cfg.newDocument(flowchart.WithLogger(logger))
	if _, err := doc.LoadFile(path); err != nil {
		return nil, err
	}
	return doc, nil
}

func runExport(cmd *cobra.Command, args []string) error {
	doc, err := loadChart(args[0])
	if err != nil {
		return err
	}
	opts := flowchart.DefaultRenderOptions()
	opts.Scale = exportScale
	opts.Padding = exportPadding
	opts.Grid = exportGrid
	if err := doc.ExportPNG(args[1], opts); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported %s\n", args[1])
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	doc, err := loadChart(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, e := range doc.Entities() {
		r := e.Rect()
		fmt.Fprintf(out, "%-22s %s  (%g,%g)-(%g,%g)  %q\n",
			e.Type(), e.Name(), r.Left, r.Top, r.Right, r.Bottom,
			strings.ReplaceAll(e.Title(), "\n", " "))
	}
	for _, l := range doc.Links() {
		fmt.Fprintf(out, "link %s.%s -> %s.%s\n", l.From, l.FromSide, l.To, l.ToSide)
	}
	return nil
}
