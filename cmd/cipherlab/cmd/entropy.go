package cmd

import (
	"fmt"
	"io"

	"code.cloudfoundry.org/bytefmt"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/spacemeshos/cipherlab/entropy"
	"github.com/spacemeshos/cipherlab/persistence"
)

// entropyCmd represents the entropy command.
var entropyCmd = &cobra.Command{
	Use:   "entropy FILE...",
	Short: "Report size and Shannon entropy of files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEntropy(cmd.OutOrStdout(), args)
	},
}

func init() {
	rootCmd.AddCommand(entropyCmd)
}

func runEntropy(w io.Writer, files []string) error {
	data := make([][]string, 0, len(files))
	for _, f := range files {
		buf, err := persistence.ReadBuffer(f)
		if err != nil {
			return err
		}

		data = append(data, []string{
			f,
			bytefmt.ByteSize(uint64(len(buf))),
			fmt.Sprintf("%.4f", entropy.Shannon(buf)),
			fmt.Sprintf("%v", entropy.IsPrintable(buf)),
		})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"File", "Size", "Entropy (bits/byte)", "Printable"})
	table.SetBorder(true)
	table.AppendBulk(data)
	table.Render()
	return nil
}
