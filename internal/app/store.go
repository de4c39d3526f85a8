package app

import (
	"context"

	"github.com/adanyl0v/go-taskboard/internal/config"
	"github.com/adanyl0v/go-taskboard/internal/store"
)

var globalStore *store.Store

func MustOpenStore() {
	cfg := config.Global().Store

	var err error
	globalStore, err = store.Open(cfg.Path)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("path", cfg.Path).
			Msg("failed to open store")
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()

	err = globalStore.Ping(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to ping store")
		panic(err)
	}
	globalLogger.Info().
		Str("path", cfg.Path).
		Msg("opened store")
}

func CloseStore() {
	err := globalStore.Close()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to close store")
		return
	}
	globalLogger.Info().Msg("closed store")
}
