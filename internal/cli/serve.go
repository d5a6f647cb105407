// Copyright (c) 2026 ChapterVault Authors
//
// This file is part of chaptervault.
//
// chaptervault is licensed under the GNU Affero General Public License v3.0
// (AGPL-3.0). See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chaptervault/chaptervault/internal/config"
	"github.com/chaptervault/chaptervault/internal/rest"
	"github.com/chaptervault/chaptervault/pkg/chapter"
	"github.com/chaptervault/chaptervault/pkg/logging"
	"github.com/chaptervault/chaptervault/pkg/permission"
	"github.com/chaptervault/chaptervault/pkg/role"
	"github.com/chaptervault/chaptervault/pkg/storage"
	"github.com/chaptervault/chaptervault/pkg/storage/instrument"
	"github.com/chaptervault/chaptervault/pkg/storage/modelstore"
)

var configFile string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the chaptervault server",
	Long: `Start the chaptervault REST server. Configuration is resolved in
order of precedence: command line flags, CHAPTERVAULT_* environment
variables, the YAML config file, then built-in defaults.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return viper.BindPFlags(cmd.Flags())
	},
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&configFile, "config", "", "path to YAML config file")
	serveCmd.Flags().String("host", "127.0.0.1", "address to listen on")
	serveCmd.Flags().Int("port", 8080, "port to listen on")
	serveCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
	serveCmd.Flags().String("log-format", "text", "log format (text, json)")
	serveCmd.Flags().String("storage-backend", "memory", "storage backend (memory, local-json, s3-json)")
	serveCmd.Flags().String("storage-dir", "", "data directory for the local-json backend")
	serveCmd.Flags().String("s3-bucket", "", "bucket for the s3-json backend")
	serveCmd.Flags().String("s3-region", "", "region for the s3-json backend")
	serveCmd.Flags().String("s3-endpoint", "", "custom S3 endpoint (MinIO, LocalStack)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Logging, os.Stdout)

	ctx := context.Background()

	chapterStore, err := modelstore.New(ctx, cfg.Storage, chapter.Namespace, chapter.Keys(), chapter.Model())
	if err != nil {
		return fmt.Errorf("chapter store: %w", err)
	}
	roleStore, err := modelstore.New(ctx, cfg.Storage, role.Namespace, role.Keys(), role.Model())
	if err != nil {
		return fmt.Errorf("role store: %w", err)
	}
	bindingStore, err := modelstore.New(ctx, cfg.Storage, permission.Namespace, permission.Keys(), permission.Model())
	if err != nil {
		return fmt.Errorf("permission store: %w", err)
	}

	roles := role.NewService(instrument.Wrap(role.Namespace, roleStore), logger)
	chapters := chapter.NewService(instrument.Wrap(chapter.Namespace, chapterStore), logger)
	permissions := permission.NewService(instrument.Wrap(permission.Namespace, bindingStore), roles, logger)

	server, err := rest.NewServer(rest.Config{
		Host:        cfg.Server.Host,
		Port:        cfg.Server.Port,
		Chapters:    chapters,
		Roles:       roles,
		Permissions: permissions,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("received signal, shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Stop(shutdownCtx)
}

// resolveConfig layers flag and environment values over the config file
// (or defaults when no file is given). Flags and environment variables
// win only when actually set; otherwise file values stand.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configFile != "" {
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = config.Default()
	}

	if v, ok := flagValue(cmd, "host"); ok {
		cfg.Server.Host = v
	}
	if flagSet(cmd, "port") {
		cfg.Server.Port = viper.GetInt("port")
	}
	if v, ok := flagValue(cmd, "log-level"); ok {
		cfg.Logging.Level = v
	}
	if v, ok := flagValue(cmd, "log-format"); ok {
		cfg.Logging.Format = v
	}
	if v, ok := flagValue(cmd, "storage-backend"); ok {
		cfg.Storage.Backend = v
	}
	if v, ok := flagValue(cmd, "storage-dir"); ok {
		if cfg.Storage.Local == nil {
			cfg.Storage.Local = &storage.LocalConfig{}
		}
		cfg.Storage.Local.Directory = v
	}
	if v, ok := flagValue(cmd, "s3-bucket"); ok {
		s3Config(cfg).Bucket = v
	}
	if v, ok := flagValue(cmd, "s3-region"); ok {
		s3Config(cfg).Region = v
	}
	if v, ok := flagValue(cmd, "s3-endpoint"); ok {
		s3Config(cfg).Endpoint = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func s3Config(cfg *config.Config) *storage.S3Config {
	if cfg.Storage.S3 == nil {
		cfg.Storage.S3 = &storage.S3Config{}
	}
	return cfg.Storage.S3
}

// flagValue returns the resolved string for a flag and whether the
// operator set it, either on the command line or through the
// CHAPTERVAULT_* environment.
func flagValue(cmd *cobra.Command, key string) (string, bool) {
	if !flagSet(cmd, key) {
		return "", false
	}
	return viper.GetString(key), true
}

func flagSet(cmd *cobra.Command, key string) bool {
	if cmd.Flags().Changed(key) {
		return true
	}
	env := "CHAPTERVAULT_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
	_, ok := os.LookupEnv(env)
	return ok
}
