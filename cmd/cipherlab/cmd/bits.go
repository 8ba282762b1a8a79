package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/spacemeshos/cipherlab/persistence"
	"github.com/spacemeshos/cipherlab/render"
)

var bitsPlain bool

// bitsCmd represents the bits command.
var bitsCmd = &cobra.Command{
	Use:   "bits",
	Short: "Print every bit of a file as a coloured marker",
	Long: `bits prints each bit of the input file, most significant first, as a red 1
or a green 0. A line break follows every --perRow bytes (64 bits by default).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBits(cmd.OutOrStdout(), cfg.BitsInput, int(cfg.BytesPerRow), bitsPlain)
	},
}

func init() {
	rootCmd.AddCommand(bitsCmd)

	bitsCmd.Flags().String("input", defaults.BitsInput, "file to render")
	bitsCmd.Flags().Uint("perRow", defaults.BytesPerRow, "bytes per output line")
	bitsCmd.Flags().BoolVar(&bitsPlain, "plain", false, "print without terminal colours")
	bindFlag(bitsCmd, "input", "bits-input")
	bindFlag(bitsCmd, "perRow", "bytes-per-row")
}

func runBits(w io.Writer, input string, perRow int, plain bool) error {
	buf, err := persistence.ReadBuffer(input)
	if err != nil {
		return err
	}

	opts := []render.Option{render.WithBytesPerRow(perRow)}
	if plain {
		opts = append(opts, render.WithPlain())
	}
	if err := render.Bits(w, buf, opts...); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}
