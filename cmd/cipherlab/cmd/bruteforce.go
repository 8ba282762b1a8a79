package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacemeshos/cipherlab/alphabet"
	"github.com/spacemeshos/cipherlab/bruteforce"
	"github.com/spacemeshos/cipherlab/config"
	"github.com/spacemeshos/cipherlab/shared"
)

// bruteforceCmd represents the bruteforce command.
var bruteforceCmd = &cobra.Command{
	Use:   "bruteforce CIPHERTEXT|-",
	Short: "Search Vigenère keys that decode base64 ciphertext to printable text",
	Long: `bruteforce tries every candidate key against every rotation of the
Vigenère alphabet, base64-decodes the result and reports printable plaintexts.
Candidate keys come from --words, or are enumerated over --keyAlphabet for
lengths --minLen..--maxLen.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := shared.ReadSource(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		return runBruteforce(ctx, cmd.OutOrStdout(), src, cfg, logger)
	},
}

func init() {
	rootCmd.AddCommand(bruteforceCmd)
	addKeySearchFlags(bruteforceCmd)
}

func runBruteforce(ctx context.Context, w io.Writer, ciphertext string, cfg *config.Config, logger *zap.Logger) error {
	opts, err := bruteforceOptions(cfg, logger)
	if err != nil {
		return err
	}

	matches, err := bruteforce.Search(ctx, ciphertext, opts...)
	if err != nil {
		return err
	}

	data := make([][]string, 0, len(matches))
	for _, m := range matches {
		data = append(data, []string{m.Key, strconv.Itoa(m.Rotation), string(m.Plaintext)})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Key", "Rotation", "Plaintext"})
	table.SetBorder(true)
	table.AppendBulk(data)
	table.Render()
	return nil
}

func bruteforceOptions(cfg *config.Config, logger *zap.Logger) ([]bruteforce.OptionFunc, error) {
	a, err := alphabet.New(cfg.Alphabet)
	if err != nil {
		return nil, fmt.Errorf("alphabet: %w", err)
	}

	bf := cfg.Bruteforce
	opts := []bruteforce.OptionFunc{
		bruteforce.WithVigenereAlphabet(a),
		bruteforce.WithKeyAlphabet(bf.KeyAlphabet),
		bruteforce.WithKeyLength(int(bf.MinKeyLen), int(bf.MaxKeyLen)),
		bruteforce.WithLimit(int(bf.Limit)),
		bruteforce.WithLogger(logger),
	}
	if len(bf.Words) > 0 {
		opts = append(opts, bruteforce.WithWords(bf.Words...))
	}
	if bf.Charset != "" {
		opts = append(opts, bruteforce.WithCharset(bf.Charset))
	}
	if bf.Workers > 0 {
		opts = append(opts, bruteforce.WithWorkers(int(bf.Workers)))
	}
	return opts, nil
}

// addKeySearchFlags registers the key search flags shared by bruteforce and crib.
func addKeySearchFlags(c *cobra.Command) {
	flags := c.Flags()
	flags.StringSlice("words", nil, "candidate keys; disables enumeration")
	flags.String("keyAlphabet", defaults.Bruteforce.KeyAlphabet, "symbols enumerated keys are built from")
	flags.Uint("minLen", defaults.Bruteforce.MinKeyLen, "shortest enumerated key")
	flags.Uint("maxLen", defaults.Bruteforce.MaxKeyLen, "longest enumerated key")
	flags.String("charset", "", "accepted plaintext symbols (default: printable text)")
	flags.Uint("workers", defaults.Bruteforce.Workers, "parallel workers (0 - one per CPU)")
	bindFlag(c, "words", "bruteforce.words")
	bindFlag(c, "keyAlphabet", "bruteforce.key-alphabet")
	bindFlag(c, "minLen", "bruteforce.min-key-len")
	bindFlag(c, "maxLen", "bruteforce.max-key-len")
	bindFlag(c, "charset", "bruteforce.charset")
	bindFlag(c, "workers", "bruteforce.workers")
}
