// Package forgecli wires the hidforge command tree.
package forgecli

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hidforge/hidforge/hiddesc"
	"github.com/hidforge/hidforge/hiddsl"
	"github.com/hidforge/hidforge/pkg/forge"
)

func Main(ctx context.Context, args []string, out, errOut io.Writer) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	return cmd.ExecuteContext(ctx)
}

type forgeProvider func() *forge.Forge

func NewRootCmd() *cobra.Command {
	cfg := forge.DefaultConfig()
	var (
		configPath string
		verbose    bool
		f          *forge.Forge
	)
	provider := func() *forge.Forge {
		return f
	}

	rootCmd := &cobra.Command{
		Use:   "hidforge",
		Short: "HID report descriptor compiler",
		Long:  `hidforge compiles annotated record definitions into HID report descriptors and report packing code.`,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to hidforge.yml")
	rootCmd.PersistentFlags().StringVar(&cfg.Package, "package", cfg.Package, "package name for generated files")
	rootCmd.PersistentFlags().StringVar(&cfg.OutDir, "out", cfg.OutDir, "output directory")
	rootCmd.PersistentFlags().BoolVar(&cfg.EmitBinary, "emit-binary", cfg.EmitBinary, "also write raw descriptor blobs")
	rootCmd.PersistentFlags().StringVar(&cfg.CacheDir, "cache-dir", cfg.CacheDir, "build cache directory (empty disables caching)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			loaded, err := forge.LoadConfig(configPath)
			if err != nil {
				return err
			}
			def := forge.DefaultConfig()
			if cfg.Package == def.Package {
				cfg.Package = loaded.Package
			}
			if cfg.OutDir == def.OutDir {
				cfg.OutDir = loaded.OutDir
			}
			if !cfg.EmitBinary {
				cfg.EmitBinary = loaded.EmitBinary
			}
			if cfg.CacheDir == "" {
				cfg.CacheDir = loaded.CacheDir
			}
		}
		logger, err := newLogger(verbose)
		if err != nil {
			return err
		}
		f, err = forge.New(logger.Named("forge"), cfg)
		return err
	}
	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if f != nil {
			return f.Close()
		}
		return nil
	}

	rootCmd.AddCommand(NewBuild(provider))
	rootCmd.AddCommand(NewDump(provider))
	rootCmd.AddCommand(NewInspect())
	rootCmd.AddCommand(NewGrammar())
	return rootCmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	loggerConfig := zap.NewDevelopmentConfig()
	loggerConfig.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	loggerConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if !verbose {
		loggerConfig.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

func NewBuild(provider forgeProvider) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "build <file.hid>...",
		Short: "Compile record definitions",
		Long:  `Compile record DSL files into generated Go sources and descriptor constants.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := provider()
			build := func(path string) error {
				result, err := f.CompileFile(path)
				if err != nil {
					return err
				}
				return f.WriteArtifacts(result)
			}
			for _, path := range args {
				if !forge.IsSourceFile(path) {
					return fmt.Errorf("%s is not a .hid file", path)
				}
				if err := build(path); err != nil {
					return err
				}
			}
			if watch {
				return f.Watch(cmd.Context(), args, build)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "recompile on change")
	return cmd
}

func NewDump(provider forgeProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <file.hid>",
		Short: "Print compiled descriptors as hex",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := provider().CompileFile(args[0])
			if err != nil {
				return err
			}
			for _, artifact := range result.Artifacts {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%d bytes)\n", artifact.Name, len(artifact.Descriptor))
				fmt.Fprint(cmd.OutOrStdout(), hex.Dump(artifact.Descriptor))
				for _, report := range artifact.Reports {
					if report.ReportID != 0 {
						fmt.Fprintf(cmd.OutOrStdout(), "  %s report %d: %d bytes\n", report.Kind, report.ReportID, report.ByteLength)
					} else {
						fmt.Fprintf(cmd.OutOrStdout(), "  %s report: %d bytes\n", report.Kind, report.ByteLength)
					}
				}
			}
			return nil
		},
	}
}

func NewInspect() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <descriptor.bin>",
		Short: "Decode a descriptor blob",
		Long:  `Decode a raw HID report descriptor and print its item structure as JSON.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			desc, err := hiddesc.Decode(data)
			if err != nil {
				return err
			}
			jsonB, err := json.MarshalIndent(desc, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(jsonB))
			return nil
		},
	}
}

func NewGrammar() *cobra.Command {
	return &cobra.Command{
		Use:   "grammar",
		Short: "Print the record DSL grammar",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), hiddsl.Grammar())
			return nil
		},
	}
}
