package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/surveycharts/pkg/cache"
	"github.com/matzehuels/surveycharts/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the dataset and artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var redisAddr string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached dataset and artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if redisAddr != "" {
				cfg.Cache.Backend = config.CacheRedis
				cfg.Cache.RedisAddr = redisAddr
			}
			if cfg.Cache.Backend == config.CacheNone {
				printInfo("Cache is disabled")
				return nil
			}

			cc, err := newCache(cmd.Context(), cfg.Cache, false)
			if err != nil {
				return err
			}
			defer cc.Close()

			if err := cache.Clear(cmd.Context(), cc); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printSuccess("Cleared %s cache", cfg.Cache.Backend)
			if where := cacheLocation(cfg.Cache); where != "" {
				printDetail("%s", where)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "clear the Redis cache at host:port")
	return cmd
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cacheLocation(cfg.Cache))
			return nil
		},
	}
}

// cacheLocation describes where the configured cache lives.
func cacheLocation(cfg config.CacheConfig) string {
	switch cfg.Backend {
	case config.CacheRedis:
		return "redis://" + cfg.RedisAddr + "/" + cache.DefaultRedisPrefix + "*"
	case config.CacheNone:
		return ""
	}
	if cfg.Dir != "" {
		return cfg.Dir
	}
	dir, err := cacheDir()
	if err != nil {
		return ""
	}
	return dir
}
