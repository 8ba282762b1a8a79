package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/cipherlab/config"
)

// configKeyAnnotation marks flags that override a config file key.
const configKeyAnnotation = "cipherlab/config-key"

var (
	Version string
	Commit  string

	configFile string
	logLevel   string

	vip      = viper.New()
	defaults = config.DefaultConfig()
	cfg      = config.DefaultConfig()
	logger   = zap.NewNop()
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "cipherlab",
	Short: "Tools for manual analysis of captured cipher artifacts",
	Long: `cipherlab bundles small, single-pass helpers used while analysing
binary cipher artifacts: XOR-ing buffer halves, rendering bits, decoding
hand-transcribed bit windows and playing with classic ciphers.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := zapcore.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		logger, err = newLogger(level)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		if err := bindFlags(cmd.Flags()); err != nil {
			return err
		}
		cfg, err = config.Load(vip, configFile)
		if err != nil {
			return err
		}
		return cfg.Validate()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		fmt.Sprintf("config file (default %s)", config.DefaultConfigFile))
	rootCmd.PersistentFlags().StringVar(&logLevel, "logLevel", zapcore.InfoLevel.String(),
		"log level (debug, info, warn, error)")
}

func newLogger(level zapcore.Level) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.DisableStacktrace = true
	return zcfg.Build()
}

// bindFlag ties flag name of cmd to a config key, so an explicitly set flag
// wins over the config file.
func bindFlag(cmd *cobra.Command, name, key string) {
	if err := cmd.Flags().SetAnnotation(name, configKeyAnnotation, []string{key}); err != nil {
		panic(err)
	}
}

func bindFlags(flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		keys, ok := f.Annotations[configKeyAnnotation]
		if !ok || err != nil {
			return
		}
		err = vip.BindPFlag(keys[0], f)
	})
	return err
}
