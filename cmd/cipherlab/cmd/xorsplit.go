package cmd

import (
	"code.cloudfoundry.org/bytefmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacemeshos/cipherlab/persistence"
	"github.com/spacemeshos/cipherlab/xor"
)

// xorsplitCmd represents the xorsplit command.
var xorsplitCmd = &cobra.Command{
	Use:   "xorsplit",
	Short: "XOR the two halves of a file together",
	Long: `xorsplit reads the input file, splits it at the midpoint and XORs each
byte of the first half with the byte at the same offset of the second half.
The result is written to the output file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runXorSplit(cfg.XorInput, cfg.XorOutput, logger)
	},
}

func init() {
	rootCmd.AddCommand(xorsplitCmd)

	xorsplitCmd.Flags().String("input", defaults.XorInput, "file to split")
	xorsplitCmd.Flags().String("output", defaults.XorOutput, "file the XOR result is written to")
	bindFlag(xorsplitCmd, "input", "xor-input")
	bindFlag(xorsplitCmd, "output", "xor-output")
}

func runXorSplit(input, output string, logger *zap.Logger) error {
	buf, err := persistence.ReadBuffer(input)
	if err != nil {
		return err
	}

	res := xor.Split(buf)
	if err := persistence.WriteBuffer(output, res); err != nil {
		return err
	}

	logger.Info("xorsplit: done",
		zap.String("input", input),
		zap.String("inputSize", bytefmt.ByteSize(uint64(len(buf)))),
		zap.String("output", output),
		zap.String("outputSize", bytefmt.ByteSize(uint64(len(res)))),
	)
	return nil
}
