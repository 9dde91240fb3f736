// Command axisticks prints the ticks an axis would show for a given range
// and pixel length, either for a time axis or for a numeric grid axis.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/npillmayer/axes"
	"github.com/npillmayer/axes/ticks"
	"github.com/spf13/cobra"
)

var (
	configPath string
	pixels     int
	withBands  bool
	withMinor  bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "axisticks",
		Short: "Print axis ticks for a value range",
		Long: `axisticks computes the tick marks and labels an axis of the given
pixel length shows for a value range.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML tick configuration")
	rootCmd.PersistentFlags().IntVarP(&pixels, "pixels", "p", 800, "Axis length in pixels")

	timeCmd := &cobra.Command{
		Use:   "time FROM TO",
		Short: "Ticks of a time axis between two RFC 3339 timestamps",
		Args:  cobra.ExactArgs(2),
		RunE:  runTime,
	}
	timeCmd.Flags().BoolVar(&withBands, "bands", false, "Also print the calendar bands")

	gridCmd := &cobra.Command{
		Use:   "grid MIN MAX",
		Short: "Ticks of a numeric axis",
		Args:  cobra.ExactArgs(2),
		RunE:  runGrid,
	}
	gridCmd.Flags().BoolVar(&withMinor, "minor", false, "Also print minor ticks")

	rootCmd.AddCommand(timeCmd, gridCmd)
	return rootCmd
}

func loadConfig() (*ticks.Config, error) {
	if configPath == "" {
		return ticks.DefaultConfig(), nil
	}
	f, err := os.Open(configPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ticks.LoadConfig(f)
}

func newAxis(lo, hi float64) *axes.Axis1D {
	axis := axes.NewAxis1D(nil)
	axis.SetMin(lo)
	axis.SetMax(hi)
	axis.SetSizePixels(pixels)
	axis.Validate()
	return axis
}

func runTime(cmd *cobra.Command, args []string) error {
	from, err := time.Parse(time.RFC3339, args[0])
	if err != nil {
		return fmt.Errorf("invalid start time: %w", err)
	}
	to, err := time.Parse(time.RFC3339, args[1])
	if err != nil {
		return fmt.Errorf("invalid end time: %w", err)
	}
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	gen, err := conf.Handler()
	if err != nil {
		return err
	}
	axis := newAxis(gen.Epoch().FromTime(from), gen.Epoch().FromTime(to))
	printTimeTicks(cmd.OutOrStdout(), gen, axis, withBands)
	return nil
}

func printTimeTicks(w io.Writer, gen *ticks.AbsoluteTime, axis *axes.Axis1D, bands bool) {
	positions := gen.TickPositions(axis, float64(axis.SizePixels()))
	labels := gen.TickLabels(positions)
	for i, t := range positions {
		fmt.Fprintf(w, "%s\t%s\n", t.In(gen.TimeZone()).Format(time.RFC3339), labels[i])
	}
	if !bands {
		return
	}
	for _, ts := range gen.TimeStructs(axis, positions) {
		fmt.Fprintf(w, "[%s, %s)\t%s\n", ts.Start.Format(time.RFC3339),
			ts.End.Format(time.RFC3339), strings.TrimSpace(ts.Text))
	}
}

func runGrid(cmd *cobra.Command, args []string) error {
	var lo, hi float64
	if _, err := fmt.Sscan(args[0], &lo); err != nil {
		return fmt.Errorf("invalid minimum: %w", err)
	}
	if _, err := fmt.Sscan(args[1], &hi); err != nil {
		return fmt.Errorf("invalid maximum: %w", err)
	}
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	printGridTicks(cmd.OutOrStdout(), conf.GridHandler(), newAxis(lo, hi), withMinor)
	return nil
}

func printGridTicks(w io.Writer, grid *ticks.Grid, axis *axes.Axis1D, minor bool) {
	if label := grid.AxisLabel(axis); label != "" {
		fmt.Fprintln(w, label)
	}
	positions := grid.TickPositions(axis)
	for i, label := range grid.TickLabels(axis, positions) {
		fmt.Fprintf(w, "%g\t%s\n", positions[i], label)
	}
	if minor {
		for _, m := range grid.MinorTickPositions(positions) {
			fmt.Fprintf(w, "%g\n", m)
		}
	}
}
