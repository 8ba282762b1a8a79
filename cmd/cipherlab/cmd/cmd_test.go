package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/spacemeshos/cipherlab/alphabet"
	"github.com/spacemeshos/cipherlab/config"
	"github.com/spacemeshos/cipherlab/vigenere"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestRunXorSplit(t *testing.T) {
	req := require.New(t)

	input := writeFile(t, "cipher.bin", []byte{0x01, 0x02, 0x03, 0x04})
	output := filepath.Join(t.TempDir(), "out", "cipherxor.bin")

	req.NoError(runXorSplit(input, output, zaptest.NewLogger(t)))

	got, err := os.ReadFile(output)
	req.NoError(err)
	req.Equal([]byte{0x02, 0x06}, got)
}

func TestRunXorSplit_MissingInput(t *testing.T) {
	req := require.New(t)

	dir := t.TempDir()
	err := runXorSplit(filepath.Join(dir, "missing.bin"), filepath.Join(dir, "out.bin"), zaptest.NewLogger(t))
	req.ErrorIs(err, os.ErrNotExist)

	_, err = os.Stat(filepath.Join(dir, "out.bin"))
	req.ErrorIs(err, os.ErrNotExist)
}

func TestRunBits(t *testing.T) {
	req := require.New(t)

	input := writeFile(t, "cipher9.bin", []byte{0xB3, 0x00})
	buf := bytes.NewBuffer(nil)

	req.NoError(runBits(buf, input, 1, true))
	req.Equal("10110011\n00000000\n\n", buf.String())

	buf.Reset()
	req.NoError(runBits(buf, input, 8, false))
	req.True(strings.HasPrefix(buf.String(), "\x1b[31m1\x1b[32m0"))
}

func TestRunWindow(t *testing.T) {
	req := require.New(t)

	input := writeFile(t, "cipher.bin", []byte{0xAB, 0xCD, 0xEF})
	buf := bytes.NewBuffer(nil)

	req.NoError(runWindow(buf, input, 12, 12, zaptest.NewLogger(t)))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	req.Len(lines, 8)
	req.Equal("abcdef", lines[0])
	req.Equal("250", lines[1])
	req.True(strings.HasPrefix(lines[2], "[142, 242, "))
	req.True(strings.HasPrefix(lines[3], "8ef2"))
	req.True(strings.HasSuffix(lines[4], ", 0]"))
	req.Len(lines[5], 64)
	req.Equal("32", lines[6])
	req.Equal("ab cd ef ", lines[7])
}

func TestRunGrid(t *testing.T) {
	req := require.New(t)

	input := writeFile(t, "cipher.bin", []byte{1, 2, 3, 4, 5})
	buf := bytes.NewBuffer(nil)

	req.NoError(runGrid(buf, input, 2, 2))
	req.Equal(" 1  2 \n 3  4 \n", buf.String())
}

func TestRunEntropy(t *testing.T) {
	req := require.New(t)

	input := writeFile(t, "text.bin", []byte("abcd"))
	buf := bytes.NewBuffer(nil)

	req.NoError(runEntropy(buf, []string{input}))
	out := buf.String()
	req.Contains(out, "2.0000")
	req.Contains(out, "4B")
	req.Contains(out, "true")

	req.Error(runEntropy(buf, []string{filepath.Join(t.TempDir(), "missing")}))
}

func TestClassic(t *testing.T) {
	req := require.New(t)

	upper := "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	buf := bytes.NewBuffer(nil)

	err := classic(buf, "ATTACKATDAWN", upper, func(src string, a alphabet.Alphabet) (string, error) {
		return vigenere.Encode(src, "LEMON", a, false)
	})
	req.NoError(err)
	req.Equal("LXFOPVEFRNHR\n", buf.String())

	req.ErrorIs(classic(buf, "X", "AA", nil), alphabet.ErrDuplicateSymbol)
}

func TestExecute_TransposeRows(t *testing.T) {
	req := require.New(t)

	buf := bytes.NewBuffer(nil)
	rootCmd.SetOut(buf)
	defer rootCmd.SetOut(nil)

	cfgFile := writeFile(t, "config.toml", nil)
	rootCmd.SetArgs([]string{"--config", cfgFile, "transpose", "--rows", "--key", "CAB", "ABCDEF"})
	req.NoError(rootCmd.Execute())
	req.Equal("BCAEFD\n", buf.String())
}

func TestRunBruteforce(t *testing.T) {
	req := require.New(t)

	b64, err := alphabet.EncodeBase64(alphabet.Base64, []byte("Hello, world"))
	req.NoError(err)
	ciphertext, err := vigenere.Decode(b64, "TheGiant", alphabet.Base64.Rotate(3), false)
	req.NoError(err)

	c := config.DefaultConfig()
	c.Bruteforce.Words = []string{"TheGiant"}
	c.Bruteforce.Workers = 2

	buf := bytes.NewBuffer(nil)
	req.NoError(runBruteforce(context.Background(), buf, ciphertext, c, zaptest.NewLogger(t)))
	req.Contains(buf.String(), "Hello, world")
	req.Contains(buf.String(), "TheGiant")
}

func TestRunCrib(t *testing.T) {
	req := require.New(t)

	b64, err := alphabet.EncodeBase64(alphabet.Base64, []byte("Hello, world"))
	req.NoError(err)
	ciphertext, err := vigenere.Encode(b64, "Ab", alphabet.Base64, false)
	req.NoError(err)

	c := config.DefaultConfig()
	c.Bruteforce.Workers = 2

	buf := bytes.NewBuffer(nil)
	req.NoError(runCrib(context.Background(), buf, ciphertext, cribModeKey, []byte("Hell"), c, zaptest.NewLogger(t)))
	req.Contains(buf.String(), "Hello, world")
	req.Contains(buf.String(), "Ab")

	substituted := alphabet.Base64.Rotate(9)
	ciphertext, err = alphabet.EncodeBase64(substituted, []byte("Hello, world"))
	req.NoError(err)

	buf.Reset()
	req.NoError(runCrib(context.Background(), buf, ciphertext, cribModeAlphabet, []byte("Hello, world"), c, zaptest.NewLogger(t)))
	req.Contains(buf.String(), "Hello, world")
	req.Contains(buf.String(), "ALPHABET")

	req.Error(runCrib(context.Background(), buf, ciphertext, "rotor", nil, c, zaptest.NewLogger(t)))
}

func TestExecute_XorSplit(t *testing.T) {
	req := require.New(t)

	input := writeFile(t, "cipher.bin", []byte{0xFF, 0x0F, 0xF0, 0x0F})
	output := filepath.Join(t.TempDir(), "xor.bin")
	cfgFile := writeFile(t, "config.toml", []byte("grid-rows = 3\n"))

	rootCmd.SetArgs([]string{"--config", cfgFile, "--logLevel", "error", "xorsplit", "--input", input, "--output", output})
	req.NoError(rootCmd.Execute())

	got, err := os.ReadFile(output)
	req.NoError(err)
	req.Equal([]byte{0x0F, 0x00}, got)
	req.Equal(uint(3), cfg.GridRows)
}

func TestExecute_HexInputFromConfig(t *testing.T) {
	req := require.New(t)

	input := writeFile(t, "dump.bin", []byte{0xDE, 0xAD})
	cfgFile := writeFile(t, "config.toml", []byte(fmt.Sprintf("dump-input = %q\n", input)))

	buf := bytes.NewBuffer(nil)
	rootCmd.SetOut(buf)
	defer rootCmd.SetOut(nil)

	rootCmd.SetArgs([]string{"--config", cfgFile, "hex"})
	req.NoError(rootCmd.Execute())
	req.Equal("dead\n", buf.String())
	req.Equal(input, cfg.DumpInput)

	// The flag wins over the config file.
	other := writeFile(t, "other.bin", []byte{0xBE, 0xEF})
	buf.Reset()
	rootCmd.SetArgs([]string{"--config", cfgFile, "hex", "--input", other})
	req.NoError(rootCmd.Execute())
	req.Equal("beef\n", buf.String())
}

func TestExecute_Version(t *testing.T) {
	req := require.New(t)

	Version, Commit = "1.2.3", "abc"
	buf := bytes.NewBuffer(nil)
	rootCmd.SetOut(buf)
	defer rootCmd.SetOut(nil)

	cfgFile := writeFile(t, "config.toml", nil)
	rootCmd.SetArgs([]string{"--config", cfgFile, "version"})
	req.NoError(rootCmd.Execute())
	req.Equal("1.2.3 (abc)\n", buf.String())
}

func TestExecute_BadLogLevel(t *testing.T) {
	req := require.New(t)

	rootCmd.SetErr(bytes.NewBuffer(nil))
	defer func() {
		rootCmd.SetErr(nil)
		logLevel = "info"
	}()

	rootCmd.SetArgs([]string{"--logLevel", "loud", "version"})
	req.Error(rootCmd.Execute())
}
