package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/spacemeshos/cipherlab/persistence"
	"github.com/spacemeshos/cipherlab/render"
)

// hexCmd represents the hex command.
var hexCmd = &cobra.Command{
	Use:   "hex",
	Short: "Print a file as a hex string",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		buf, err := persistence.ReadBuffer(cfg.DumpInput)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), render.Hex(buf))
		return err
	},
}

// gridCmd represents the grid command.
var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Print the first rows*cols bytes of a file as a hex grid",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGrid(cmd.OutOrStdout(), cfg.DumpInput, int(cfg.GridRows), int(cfg.GridCols))
	},
}

func init() {
	rootCmd.AddCommand(hexCmd)
	rootCmd.AddCommand(gridCmd)

	for _, c := range []*cobra.Command{hexCmd, gridCmd} {
		c.Flags().String("input", defaults.DumpInput, "file to dump")
		bindFlag(c, "input", "dump-input")
	}
	addGridFlags(gridCmd)
}

func addGridFlags(c *cobra.Command) {
	c.Flags().Uint("rows", defaults.GridRows, "grid rows")
	c.Flags().Uint("cols", defaults.GridCols, "grid columns")
	bindFlag(c, "rows", "grid-rows")
	bindFlag(c, "cols", "grid-cols")
}

func runGrid(w io.Writer, input string, rows, cols int) error {
	buf, err := persistence.ReadBuffer(input)
	if err != nil {
		return err
	}
	return render.Grid(w, buf, rows, cols)
}
