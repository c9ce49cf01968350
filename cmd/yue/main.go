// File path: cmd/yue/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/isyuricunha/website-sub003/internal/api"
	"github.com/isyuricunha/website-sub003/internal/common"
	"github.com/isyuricunha/website-sub003/internal/content"
	"github.com/isyuricunha/website-sub003/internal/sqlite"
)

func main() {
	logger := common.Logger()

	if err := godotenv.Load(); err != nil {
		logger.Warn("yue: .env file not loaded", "error", err)
	} else {
		logger.Info("yue: environment loaded from .env")
	}

	addr := flag.String("addr", ":8082", "listen address")
	catalogPath := flag.String("catalog", defaultCatalogPath(), "path to the JSONL content catalog")
	catalogDB := flag.String("catalog-db", strings.TrimSpace(os.Getenv("CATALOG_DB_PATH")), "path to the SQLite content catalog (takes precedence over -catalog)")
	localesFlag := flag.String("locales", strings.Join(content.DefaultLocales, ","), "comma-separated supported locales")
	defaultLocale := flag.String("default-locale", "en", "locale used when requests omit one")
	cacheTTL := flag.Duration("cache-ttl", 30*time.Second, "catalog snapshot cache lifetime (0 disables expiry)")
	flag.Parse()

	logger.Info("yue: startup initiated", "addr", *addr)

	provider, cleanup, err := buildProvider(*catalogDB, *catalogPath)
	if err != nil {
		logger.Error("yue: catalog provider failed", "error", err)
		fmt.Println("catalog error:", err)
		os.Exit(1)
	}
	defer cleanup()
	provider = content.NewCachingProvider(provider, *cacheTTL)

	cfg := api.DefaultConfig()
	cfg.Locales = parseLocales(*localesFlag)
	cfg.DefaultLocale = *defaultLocale

	server, err := api.NewServer(provider, &cfg)
	if err != nil {
		logger.Error("yue: server construction failed", "error", err)
		fmt.Println("server error:", err)
		os.Exit(1)
	}

	httpServer := &http.Server{Addr: *addr, Handler: server}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("yue: shutdown incomplete", "error", err)
		}
	}()

	logger.Info("yue: server listening", "addr", *addr, "health", "/healthz")
	fmt.Printf("Serving on %s\n", *addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("yue: server stopped", "error", err)
		fmt.Println("server stopped:", err)
		os.Exit(1)
	}
}

func buildProvider(dbPath, filePath string) (content.Provider, func(), error) {
	logger := common.Logger()
	if strings.TrimSpace(dbPath) != "" {
		store, err := sqlite.Open(dbPath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("yue: catalog backed by sqlite", "path", dbPath)
		return store, func() { store.Close() }, nil
	}
	store, err := content.NewFileStore(filePath)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("yue: catalog backed by jsonl file", "path", filePath)
	return store, func() {}, nil
}

func parseLocales(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

func defaultCatalogPath() string {
	return filepath.Join("data", "catalog.jsonl")
}
