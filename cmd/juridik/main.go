package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/juridik/internal/buildinfo"
	"github.com/dmitrijs2005/juridik/internal/client/cli"
	"github.com/dmitrijs2005/juridik/internal/client/client"
	"github.com/dmitrijs2005/juridik/internal/client/config"
	"github.com/dmitrijs2005/juridik/internal/client/services"
	"github.com/dmitrijs2005/juridik/internal/client/session"
	"github.com/dmitrijs2005/juridik/internal/client/tokenstore"
	"github.com/dmitrijs2005/juridik/internal/filex"
	"github.com/dmitrijs2005/juridik/internal/logging"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const logFileName = "juridik.log"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "juridik",
		Short: "Terminal client for the juridik legal assistant",
		Long: `juridik is an interactive client for the juridik legal assistant.

Sign in, ask questions with optional PDF or Word attachments and manage
your document library from a single prompt. The session survives restarts
and is stored under the data directory.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	fv := config.BindFlags(root)

	root.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(cmd, fv)
		if err != nil {
			return err
		}
		return run(cmd.Context(), cfg)
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, _ []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd, fv)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()
			return enc.Encode(cfg)
		},
	})

	return root
}

func run(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	log, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := tokenstore.Open(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open token store: %w", err)
	}
	defer store.Close()

	sess := session.New(store)
	api := client.New(cfg.APIBaseURL, cfg.RequestTimeout, sess, log)

	app, err := cli.NewApp(cfg, cli.Deps{
		Auth:   services.NewAuthManager(api, sess, log),
		Chat:   services.NewChatManager(api, log),
		Docs:   services.NewDocumentManager(api, log),
		Pinger: api,
	}, log)
	if err != nil {
		return err
	}

	log.Info(ctx, "starting", "version", buildinfo.Version, "api", cfg.APIBaseURL, "token_store", store.Kind())
	app.Run(ctx)
	return nil
}

// openLogger writes logs to a file in the data directory so they do not
// interleave with the prompt.
func openLogger(cfg *config.Config) (logging.Logger, func(), error) {
	dir, err := filex.EnsurePrivateDir(cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	log, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: f})
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return log, func() { _ = f.Close() }, nil
}
