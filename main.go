package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gravitalia/forum/database"
	"github.com/Gravitalia/forum/helpers"
	"github.com/Gravitalia/forum/router"
	"github.com/Gravitalia/forum/translation"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Get key-value in .env file
	godotenv.Load()
	config := helpers.LoadConfig()

	ctx := context.Background()

	// Memgraph when configured, process memory otherwise
	var store database.Store = database.NewMemory()
	if config.GraphURL != "" {
		graph, err := database.NewGraph(ctx, config.GraphURL, config.GraphUsername, config.GraphPassword)
		if err != nil {
			log.Printf("Cannot use graph database, falling back on memory: %v", err)
		} else {
			store = graph
		}
	}

	tracing := helpers.InitTracer(config.ZipkinAddress, config.Port)
	defer tracing.Close()

	gateway := translation.NewGateway(translation.NewProviders(config.Providers, tracing.Client)...)
	if config.MemURL != "" {
		gateway.WithCache(database.NewMemcached(config.MemURL))
	}

	nats := helpers.InitNATS(config.NatsURL)
	defer nats.Close()

	jobs, err := helpers.Schedule("@every 1m", func() {
		stats, err := store.Stats(ctx)
		if err != nil {
			log.Printf("(Schedule) Cannot get stats: %v", err)
			return
		}
		helpers.SetForumGauges(stats)
	})
	if err != nil {
		log.Fatal(err)
	}
	defer jobs.Stop()

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := router.New(store, gateway, nats, config)

	signals, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := serve(signals, config, tracing.Middleware(r)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("Server stopped: %v", err)
	}
	log.Println("Closing")

	timeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := store.Close(timeout); err != nil {
		log.Printf("Cannot close database: %v", err)
	}
}

// serve runs handler until ctx is done, then shuts the server down
func serve(ctx context.Context, config helpers.Config, handler http.Handler) error {
	if config.TLSDomain != "" {
		log.Println("Server is starting with TLS for", config.TLSDomain)
		return autotls.RunWithContext(ctx, handler, config.TLSDomain)
	}

	log.Println("Server is starting on port", config.Port)

	// Create web server
	server := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           handler,
		ReadHeaderTimeout: 3 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	timeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(timeout)
}
