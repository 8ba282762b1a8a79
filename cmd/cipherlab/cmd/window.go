package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacemeshos/cipherlab/persistence"
	"github.com/spacemeshos/cipherlab/render"
	"github.com/spacemeshos/cipherlab/window"
)

// windowCmd represents the window command.
var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Decode the hand-transcribed bit windows",
	Long: `window concatenates the embedded 0/1 windows, packs them into bytes
(filling a trailing partial byte with ones), inverts every byte and prints the
packed and inverted forms. The input file is dumped as hex and as a grid for
comparison.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWindow(cmd.OutOrStdout(), cfg.WindowInput, int(cfg.GridRows), int(cfg.GridCols), logger)
	},
}

func init() {
	rootCmd.AddCommand(windowCmd)

	windowCmd.Flags().String("input", defaults.WindowInput, "file dumped next to the decoded windows")
	bindFlag(windowCmd, "input", "window-input")
	addGridFlags(windowCmd)
}

func runWindow(w io.Writer, input string, rows, cols int, logger *zap.Logger) error {
	buf, err := persistence.ReadBuffer(input)
	if err != nil {
		return err
	}

	windows, err := window.Load()
	if err != nil {
		return err
	}
	logger.Debug("window: loaded windows", zap.Int("count", len(windows)))

	res, err := window.Decode(windows)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, render.Hex(buf))
	fmt.Fprintln(w, res.Bits)
	fmt.Fprintln(w, render.ByteList(res.Packed))
	fmt.Fprintln(w, render.Hex(res.Packed))
	fmt.Fprintln(w, render.ByteList(res.Inverted))
	fmt.Fprintln(w, render.Hex(res.Inverted))
	fmt.Fprintln(w, len(res.Inverted))

	return render.Grid(w, buf, rows, cols)
}
