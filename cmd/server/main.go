package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/rhyrak/go-seating/internal/cache"
	"github.com/rhyrak/go-seating/internal/config"
	"github.com/rhyrak/go-seating/internal/logger"
	"github.com/rhyrak/go-seating/internal/store"
)

func main() {
	configPath := pflag.StringP("config", "c", os.Getenv("SEATING_CONFIG"), "config file")
	pflag.Parse()

	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.New("server", cfg.General.Debug)
	defer log.Sync()

	runs, err := store.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal("unable to open run store", zap.String("path", cfg.Database.Path), zap.Error(err))
	}

	var c cache.Cache = cache.NewMemory()
	if cfg.Redis.Enabled {
		if rdb := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); rdb != nil {
			c = cache.NewRedisCache(rdb, cfg.Redis.TTL)
		} else {
			log.Warn("redis unreachable, using in-memory result cache", zap.String("addr", cfg.Redis.Addr))
		}
	}

	fs := afero.NewOsFs()
	s := newServer(cfg, fs, runs, c, log)
	if cfg.Output.Font != "" {
		font, err := afero.ReadFile(fs, cfg.Output.Font)
		if err != nil {
			log.Fatal("unable to read sheet font", zap.String("path", cfg.Output.Font), zap.Error(err))
		}
		s.gen.WithFont(font)
	}
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("listening", zap.String("addr", addr))
	if err := s.router().Run(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
