package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spacemeshos/smutil"

	"github.com/spacemeshos/cipherlab/bruteforce"
)

const (
	DefaultConfigFileName = "config.toml"

	DefaultXorInput    = "cipher.bin"
	DefaultXorOutput   = "out/cipherxor.bin"
	DefaultBitsInput   = "cipher9.bin"
	DefaultWindowInput = "cipher.bin"
	DefaultDumpInput   = "cipher.bin"

	DefaultBytesPerRow = 8
	DefaultGridRows    = 12
	DefaultGridCols    = 12

	DefaultAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

	DefaultMinKeyLen = bruteforce.DefaultMinKeyLen
	DefaultMaxKeyLen = bruteforce.DefaultMaxKeyLen
)

var (
	DefaultHomeDir    = filepath.Join(smutil.GetUserHomeDirectory(), "cipherlab")
	DefaultConfigFile = filepath.Join(DefaultHomeDir, DefaultConfigFileName)
)

type Config struct {
	// Input and output files.
	XorInput    string `mapstructure:"xor-input"`
	XorOutput   string `mapstructure:"xor-output"`
	BitsInput   string `mapstructure:"bits-input"`
	WindowInput string `mapstructure:"window-input"`
	DumpInput   string `mapstructure:"dump-input"`

	// Rendering.
	BytesPerRow uint `mapstructure:"bytes-per-row"`
	GridRows    uint `mapstructure:"grid-rows"`
	GridCols    uint `mapstructure:"grid-cols"`

	// Classic ciphers.
	Alphabet string `mapstructure:"alphabet"`

	Bruteforce BruteforceConfig `mapstructure:"bruteforce"`
}

type BruteforceConfig struct {
	KeyAlphabet string   `mapstructure:"key-alphabet"`
	MinKeyLen   uint     `mapstructure:"min-key-len"`
	MaxKeyLen   uint     `mapstructure:"max-key-len"`
	Words       []string `mapstructure:"words"`
	// Plaintext symbols accepted instead of any printable text.
	Charset string `mapstructure:"charset"`
	// Results kept by a crib recovery.
	Limit uint `mapstructure:"limit"`
	// 0 - one worker per CPU.
	Workers uint `mapstructure:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		XorInput:    DefaultXorInput,
		XorOutput:   DefaultXorOutput,
		BitsInput:   DefaultBitsInput,
		WindowInput: DefaultWindowInput,
		DumpInput:   DefaultDumpInput,

		BytesPerRow: DefaultBytesPerRow,
		GridRows:    DefaultGridRows,
		GridCols:    DefaultGridCols,

		Alphabet: DefaultAlphabet,

		Bruteforce: BruteforceConfig{
			KeyAlphabet: bruteforce.DefaultKeyAlphabet,
			MinKeyLen:   DefaultMinKeyLen,
			MaxKeyLen:   DefaultMaxKeyLen,
			Limit:       bruteforce.DefaultLimit,
		},
	}
}

func (cfg *Config) Validate() error {
	if cfg.XorOutput == "" {
		return errors.New("invalid `xor-output`; expected: a file path")
	}

	if cfg.BytesPerRow == 0 {
		return fmt.Errorf("invalid `bytes-per-row`; expected: > 0, given: %d", cfg.BytesPerRow)
	}

	if cfg.GridCols == 0 {
		return fmt.Errorf("invalid `grid-cols`; expected: > 0, given: %d", cfg.GridCols)
	}

	if cfg.Alphabet == "" {
		return errors.New("invalid `alphabet`; expected: at least one symbol")
	}

	bf := cfg.Bruteforce
	if bf.MinKeyLen == 0 {
		return fmt.Errorf("invalid `bruteforce.min-key-len`; expected: > 0, given: %d", bf.MinKeyLen)
	}

	if bf.MaxKeyLen < bf.MinKeyLen {
		return fmt.Errorf("invalid `bruteforce.max-key-len`; expected: >= %d, given: %d", bf.MinKeyLen, bf.MaxKeyLen)
	}

	if bf.MaxKeyLen > bruteforce.MaxKeyLen {
		return fmt.Errorf("invalid `bruteforce.max-key-len`; expected: <= %d, given: %d", bruteforce.MaxKeyLen, bf.MaxKeyLen)
	}

	if bf.Limit == 0 {
		return fmt.Errorf("invalid `bruteforce.limit`; expected: > 0, given: %d", bf.Limit)
	}

	return nil
}
