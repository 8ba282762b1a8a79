package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacemeshos/cipherlab/bruteforce"
	"github.com/spacemeshos/cipherlab/config"
	"github.com/spacemeshos/cipherlab/shared"
)

const (
	cribModeAlphabet = "alphabet"
	cribModeKey      = "key"
)

var (
	cribText string
	cribMode string
)

// cribCmd represents the crib command.
var cribCmd = &cobra.Command{
	Use:   "crib --crib TEXT CIPHERTEXT|-",
	Short: "Recover a base64 alphabet or Vigenère key from known plaintext",
	Long: `crib takes a base64 ciphertext and TEXT, a known prefix of its plaintext.

With --mode alphabet the ciphertext symbols are assumed substituted; the crib
pins part of the alphabet and the rest is searched.
With --mode key the ciphertext is assumed Vigenère-enciphered over --alphabet;
the crib pins key symbols for every key length and the rest is searched over
--keyAlphabet, or only the --words keys are checked.

Every branch decoding to a byte outside --charset (printable text by default)
is dropped. The search stops after --limit results.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := shared.ReadSource(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		return runCrib(ctx, cmd.OutOrStdout(), src, cribMode, []byte(cribText), cfg, logger)
	},
}

func init() {
	rootCmd.AddCommand(cribCmd)
	addKeySearchFlags(cribCmd)

	flags := cribCmd.Flags()
	flags.StringVar(&cribText, "crib", "", "known plaintext prefix (required)")
	flags.StringVar(&cribMode, "mode", cribModeKey, "what to recover: alphabet or key")
	flags.StringP("alphabet", "a", defaults.Alphabet, "Vigenère alphabet")
	flags.Uint("limit", defaults.Bruteforce.Limit, "stop after this many results")
	bindFlag(cribCmd, "alphabet", "alphabet")
	bindFlag(cribCmd, "limit", "bruteforce.limit")
	_ = cribCmd.MarkFlagRequired("crib")
}

func runCrib(ctx context.Context, w io.Writer, ciphertext, mode string, crib []byte, cfg *config.Config, logger *zap.Logger) error {
	opts, err := bruteforceOptions(cfg, logger)
	if err != nil {
		return err
	}

	var (
		results []bruteforce.Recovery
		header  string
	)
	switch mode {
	case cribModeAlphabet:
		header = "Alphabet"
		results, err = bruteforce.RecoverAlphabet(ctx, ciphertext, crib, opts...)
	case cribModeKey:
		header = "Key"
		results, err = bruteforce.RecoverKey(ctx, ciphertext, crib, opts...)
	default:
		return fmt.Errorf("invalid mode %q; expected: %s or %s", mode, cribModeAlphabet, cribModeKey)
	}
	if err != nil {
		return err
	}

	data := make([][]string, 0, len(results))
	for _, r := range results {
		secret := r.Key
		if mode == cribModeAlphabet {
			secret = r.Alphabet
		}
		data = append(data, []string{secret, string(r.Plaintext)})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{header, "Plaintext"})
	table.SetBorder(true)
	table.AppendBulk(data)
	table.Render()
	return nil
}
