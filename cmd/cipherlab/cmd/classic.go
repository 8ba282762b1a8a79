package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/spacemeshos/cipherlab/alphabet"
	"github.com/spacemeshos/cipherlab/shared"
	"github.com/spacemeshos/cipherlab/substitution"
	"github.com/spacemeshos/cipherlab/transposition"
	"github.com/spacemeshos/cipherlab/vigenere"
)

var (
	classicDecode  bool
	classicAutokey bool
	classicKey     string
	transposeRows  bool
	cipherAlphabet string
)

// vigenereCmd represents the vigenere command.
var vigenereCmd = &cobra.Command{
	Use:   "vigenere SOURCE|-",
	Short: "Encode or decode with the Vigenère cipher",
	Long: `vigenere enciphers SOURCE (or stdin when SOURCE is -) with --key over
--alphabet. With --autokey the key is extended by the plaintext.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runClassic(cmd, args[0], func(src string, a alphabet.Alphabet) (string, error) {
			if classicDecode {
				return vigenere.Decode(src, classicKey, a, classicAutokey)
			}
			return vigenere.Encode(src, classicKey, a, classicAutokey)
		})
	},
}

// transposeCmd represents the transpose command.
var transposeCmd = &cobra.Command{
	Use:   "transpose SOURCE|-",
	Short: "Encode or decode with keyed columnar transposition",
	Long: `transpose writes SOURCE into rows as wide as --key and reads the
columns out in key order. With --rows the columns are reordered inside every
row instead, leaving each row in place.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runClassic(cmd, args[0], func(src string, a alphabet.Alphabet) (string, error) {
			switch {
			case transposeRows && classicDecode:
				return transposition.DecodeRows(src, classicKey, a)
			case transposeRows:
				return transposition.EncodeRows(src, classicKey, a)
			case classicDecode:
				return transposition.Decode(src, classicKey, a)
			}
			return transposition.Encode(src, classicKey, a)
		})
	},
}

// substituteCmd represents the substitute command.
var substituteCmd = &cobra.Command{
	Use:   "substitute SOURCE|-",
	Short: "Encode or decode with a substitution alphabet",
	Long: `substitute maps every symbol of SOURCE from the plaintext alphabet
(--alphabet) to the same position of --cipherAlphabet, or back with --decode.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runClassic(cmd, args[0], func(src string, plain alphabet.Alphabet) (string, error) {
			cipher, err := alphabet.New(cipherAlphabet)
			if err != nil {
				return "", fmt.Errorf("cipher alphabet: %w", err)
			}
			if classicDecode {
				return substitution.Decode(src, plain, cipher)
			}
			return substitution.Encode(src, plain, cipher)
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{vigenereCmd, transposeCmd, substituteCmd} {
		rootCmd.AddCommand(c)
		c.Flags().BoolVarP(&classicDecode, "decode", "d", false, "decode instead of encode")
		c.Flags().StringP("alphabet", "a", defaults.Alphabet, "symbol alphabet")
		bindFlag(c, "alphabet", "alphabet")
	}

	for _, c := range []*cobra.Command{vigenereCmd, transposeCmd} {
		c.Flags().StringVarP(&classicKey, "key", "k", "", "cipher key (required)")
		_ = c.MarkFlagRequired("key")
	}
	vigenereCmd.Flags().BoolVar(&classicAutokey, "autokey", false, "extend the key with the plaintext")
	transposeCmd.Flags().BoolVar(&transposeRows, "rows", false, "reorder columns inside every row")

	substituteCmd.Flags().StringVarP(&cipherAlphabet, "cipherAlphabet", "c", "", "ciphertext alphabet (required)")
	_ = substituteCmd.MarkFlagRequired("cipherAlphabet")
}

func runClassic(cmd *cobra.Command, arg string, fn func(string, alphabet.Alphabet) (string, error)) error {
	src, err := shared.ReadSource(arg, cmd.InOrStdin())
	if err != nil {
		return err
	}
	return classic(cmd.OutOrStdout(), src, cfg.Alphabet, fn)
}

func classic(w io.Writer, src, symbols string, fn func(string, alphabet.Alphabet) (string, error)) error {
	a, err := alphabet.New(symbols)
	if err != nil {
		return fmt.Errorf("alphabet: %w", err)
	}

	out, err := fn(src, a)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
