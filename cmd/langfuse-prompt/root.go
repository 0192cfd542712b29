package main

import (
	"fmt"
	"strings"

	"github.com/skosovsky/langfuse"
	"github.com/skosovsky/langfuse/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
	version    int
	label      string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "langfuse-prompt",
		Short:         "Fetch and compile Langfuse prompts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			_, err := loggerConfig(opts.logLevel, opts.logFormat)
			return err
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (YAML); LANGFUSE_* env vars override it")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "console", "Log format (console, json)")
	cmd.PersistentFlags().IntVar(&opts.version, "version", 0, "Prompt version to fetch")
	cmd.PersistentFlags().StringVar(&opts.label, "label", "", "Prompt label to fetch (e.g. staging)")

	cmd.AddCommand(newGetCmd(opts), newVarsCmd(opts))
	return cmd
}

func newGetCmd(opts *rootOptions) *cobra.Command {
	var (
		vars []string
		raw  bool
	)
	cmd := &cobra.Command{
		Use:   "get NAME",
		Short: "Print a prompt compiled with --var values (or raw with --raw)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			variables, err := parseVars(vars)
			if err != nil {
				return err
			}
			prompt, err := opts.fetch(cmd, args[0])
			if err != nil {
				return err
			}
			if raw {
				fmt.Fprintln(cmd.OutOrStdout(), prompt.Raw())
				return nil
			}
			out, err := prompt.Compile(variables)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&vars, "var", "v", nil, "Variable as name=value (repeatable)")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the template without compiling")
	return cmd
}

func newVarsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "vars NAME",
		Short: "List the placeholders a prompt requires",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, err := opts.fetch(cmd, args[0])
			if err != nil {
				return err
			}
			for _, v := range prompt.Variables() {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}
}

// fetch resolves the client from the command context, falling back to one built from config.
func (o *rootOptions) fetch(cmd *cobra.Command, name string) (*langfuse.Prompt, error) {
	ctx := cmd.Context()
	var fetchOpts []langfuse.FetchOption
	if o.version > 0 {
		fetchOpts = append(fetchOpts, langfuse.WithVersion(o.version))
	}
	if o.label != "" {
		fetchOpts = append(fetchOpts, langfuse.WithLabel(o.label))
	}
	if c := langfuse.FromContext(ctx); c != nil {
		return c.FetchPrompt(ctx, name, fetchOpts...)
	}

	logger, err := newLogger(o.logLevel, o.logFormat)
	if err != nil {
		return nil, err
	}
	defer func() { _ = logger.Sync() }()
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("config loaded", zap.Stringer("config", cfg))
	client, err := cfg.NewClient(langfuse.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return client.FetchPrompt(ctx, name, fetchOpts...)
}

func newLogger(level, format string) (*zap.Logger, error) {
	cfg, err := loggerConfig(level, format)
	if err != nil {
		return nil, err
	}
	return cfg.Build()
}

// loggerConfig picks the production (JSON) or development (console) zap preset.
func loggerConfig(level, format string) (zap.Config, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return zap.Config{}, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	var cfg zap.Config
	switch strings.ToLower(format) {
	case "json":
		cfg = zap.NewProductionConfig()
	case "console", "":
		cfg = zap.NewDevelopmentConfig()
	default:
		return zap.Config{}, fmt.Errorf("invalid --log-format %q: want console or json", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg, nil
}

func parseVars(pairs []string) (langfuse.Variables, error) {
	vars := make(langfuse.Variables, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --var %q: want name=value", pair)
		}
		vars[name] = value
	}
	return vars, nil
}
