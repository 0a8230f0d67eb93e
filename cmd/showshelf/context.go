package main

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/Belphemur/ShowShelf/internal/catalogue"
	"github.com/Belphemur/ShowShelf/internal/config"
	"github.com/Belphemur/ShowShelf/internal/kvstore"
	"github.com/Belphemur/ShowShelf/internal/persistence"
)

// storeGroup labels the library store in kvstore metrics.
const storeGroup = "library"

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Init(path)
		if err != nil {
			c.configErr = fmt.Errorf("load config: %w", err)
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// openStore creates the configured key-value store.
func (c *commandContext) openStore() (kvstore.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return kvstore.New(cfg.Storage.Provider, kvstore.ProviderConfig{
		Path:          cfg.Storage.Path,
		BusyTimeout:   cfg.BusyTimeout(),
		Logger:        config.StoreLogger(),
		RedisAddress:  cfg.Storage.Redis.Address,
		RedisPassword: cfg.Storage.Redis.Password,
		RedisDB:       cfg.Storage.Redis.DB,
		KeyPrefix:     cfg.Storage.Redis.KeyPrefix,
		Group:         storeGroup,
	})
}

// withCatalogue opens the store, restores the library and runs fn against it.
func (c *commandContext) withCatalogue(ctx context.Context, fn func(*catalogue.Service) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := c.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	logger := config.GetLogger()
	repo := persistence.NewRepository(store, persistence.Options{
		Key:        cfg.Storage.Key,
		Retries:    cfg.Storage.Retries,
		RetryDelay: cfg.RetryDelay(),
	}, logger)

	svc := catalogue.New(repo, logger)
	if _, err := svc.Restore(ctx); err != nil {
		return err
	}
	return fn(svc)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func watchedLabel(watched bool) string {
	if watched {
		return "watched"
	}
	return "not watched"
}
