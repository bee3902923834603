// bite-api is the reference REST backend for the bite admin client.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bite-admin/bite/pkg/apiserver"
	storepkg "github.com/bite-admin/bite/pkg/store"
)

// version is set at build time via -ldflags "-X main.version=x.y.z"
var version = "v0.1.0"

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	storeType := flag.String("store-type", "memory", "record store backend: memory, etcd or postgres")
	origins := flag.String("allowed-origins", "", "comma-separated CORS origins (default: any)")
	debug := flag.Bool("debug", false, "log at debug level")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(logger, *addr, *storeType, *origins, *debug); err != nil {
		logger.Error("bite-api exited", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, addr, storeType, origins string, debug bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The backend can also be selected via BITE_STORE_TYPE (takes precedence
	// over the flag). For etcd, set BITE_ETCD_ENDPOINTS to a comma-separated
	// list of endpoints; for postgres, set BITE_POSTGRES_DSN, e.g.:
	//   BITE_STORE_TYPE=postgres BITE_POSTGRES_DSN=postgres://bite@localhost/bite?sslmode=disable
	if envType := os.Getenv("BITE_STORE_TYPE"); envType != "" {
		storeType = envType
	}
	s, err := openStore(ctx, storeType, debug, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	opts := apiserver.DefaultServerOptions()
	opts.Version = version
	opts.Logger = logger
	if origins != "" {
		opts.AllowedOrigins = strings.Split(origins, ",")
	}
	srv := apiserver.NewServer(s, opts)
	if err := srv.SyncRecordGauges(ctx); err != nil {
		logger.Warn("initial record count failed", "err", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting bite-api", "addr", addr, "store", storeType, "version", version)
		return srv.ListenAndServe(addr)
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.GracefulShutdown(shutCtx)
	})
	return g.Wait()
}

// openStore connects the record store named by storeType.
func openStore(ctx context.Context, storeType string, debug bool, logger *slog.Logger) (storepkg.Store, error) {
	switch storeType {
	case "memory":
		return storepkg.NewMemoryStore(), nil
	case "etcd":
		endpoints := []string{"http://localhost:2379"}
		if envEndpoints := os.Getenv("BITE_ETCD_ENDPOINTS"); envEndpoints != "" {
			endpoints = strings.Split(envEndpoints, ",")
		}
		zl := zap.NewNop()
		if debug {
			var err error
			if zl, err = zap.NewDevelopment(); err != nil {
				return nil, fmt.Errorf("build etcd logger: %w", err)
			}
		}
		s, err := storepkg.NewEtcdStore(endpoints, zl)
		if err != nil {
			return nil, fmt.Errorf("connect to etcd %v: %w", endpoints, err)
		}
		logger.Info("connected to etcd", "endpoints", endpoints)
		return s, nil
	case "postgres":
		dsn := os.Getenv("BITE_POSTGRES_DSN")
		if dsn == "" {
			return nil, fmt.Errorf("BITE_POSTGRES_DSN must be set for the postgres store")
		}
		s, err := storepkg.NewPostgresStore(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		logger.Info("connected to postgres")
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported store type: %s (supported: memory, etcd, postgres)", storeType)
	}
}
