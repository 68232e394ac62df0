package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/MajorLift/metamask-core/accounts"
	"github.com/MajorLift/metamask-core/configs"
	"github.com/MajorLift/metamask-core/datastore/gorm"
	"github.com/MajorLift/metamask-core/events"
	"github.com/MajorLift/metamask-core/handlers"
	"github.com/MajorLift/metamask-core/jobs"
	"github.com/MajorLift/metamask-core/keyring"
	"github.com/MajorLift/metamask-core/phishing"
	"github.com/MajorLift/metamask-core/rates"
	"github.com/MajorLift/metamask-core/system"
	"github.com/MajorLift/metamask-core/transactions"
)

const version = "0.1.0"

var (
	sha1ver   string // sha1 revision used to build the program
	buildTime string // when the executable was built
)

func main() {
	var printVersion bool

	flag.BoolVar(&printVersion, "version", false, "if true, print version and exit")
	flag.Parse()

	if printVersion {
		fmt.Printf("v%s build on %s from sha1 %s\n", version, buildTime, sha1ver)
		os.Exit(0)
	}

	cfg, err := configs.Parse()
	if err != nil {
		panic(err)
	}

	runServer(cfg)

	os.Exit(0)
}

func runServer(cfg *configs.Config) {
	configs.ConfigureLogger(cfg.LogLevel)

	log.Info("Starting server")

	// Database
	db, err := gorm.New()
	if err != nil {
		log.Fatal(err)
	}
	defer gorm.Close(db)

	systemService := system.NewService(
		system.NewGormStore(db),
		system.WithPauseDuration(cfg.MaintenancePauseDuration),
	)

	// Create a worker pool
	wp := jobs.NewWorkerPool(
		jobs.NewGormStore(db),
		cfg.WorkerQueueCapacity,
		cfg.WorkerCount,
	)

	defer func() {
		wp.Stop()
		log.Info("Stopped workerpool")
	}()

	// Keyring bridge fed by the state ingestion endpoint
	bridge := keyring.NewStateBridge()

	// Services
	jobsService := jobs.NewService(jobs.NewGormStore(db))

	accountService, err := accounts.NewService(accounts.NewGormStore(db), bridge)
	if err != nil {
		log.Fatal(err)
	}

	ratesCfg, err := rates.ParseConfig()
	if err != nil {
		log.Fatal(err)
	}
	ratesService := rates.NewService(
		rates.NewGormStore(db),
		rates.NewClient(ratesCfg.APIURL, ratesCfg.Currency),
		ratesCfg.Symbols,
	)

	transactionsCfg, err := transactions.ParseConfig()
	if err != nil {
		log.Fatal(err)
	}
	transactionService := transactions.NewService(
		transactions.NewGormStore(db),
		transactions.NewExplorerClient(transactionsCfg.ExplorerURL, transactionsCfg.ExplorerAPIKey, transactionsCfg.ExplorerRateLimit),
		wp,
		transactionsCfg,
	)

	phishingCfg, err := phishing.ParseConfig()
	if err != nil {
		log.Fatal(err)
	}
	phishingService := phishing.NewService(phishingCfg.ListURL)

	// Register handlers for keyring push events
	events.KeyringStateChanged.Register(&accounts.KeyringStateChangedHandler{Service: accountService})
	events.SnapStateChanged.Register(&accounts.SnapStateChangedHandler{Service: accountService})

	wp.Start()
	log.Info("Started workerpool")

	// HTTP handling
	systemHandler := handlers.NewSystem(systemService)
	jobsHandler := handlers.NewJobs(jobsService)
	accountHandler := handlers.NewAccounts(accountService)
	keyringHandler := handlers.NewKeyring(bridge)
	ratesHandler := handlers.NewRates(ratesService)
	transactionHandler := handlers.NewTransactions(transactionService)
	phishingHandler := handlers.NewPhishing(phishingService)

	r := mux.NewRouter()

	// Catch the api version
	rv := r.PathPrefix("/{apiVersion}").Subrouter()

	// Debug
	rv.Handle("/debug", handlers.Debug("https://github.com/MajorLift/metamask-core", sha1ver, buildTime)).Methods(http.MethodGet)

	// Health
	rv.HandleFunc("/health/ready", handlers.HandleHealthReady).Methods(http.MethodGet)
	rv.Handle("/health/liveness", handlers.Liveness(func() (interface{}, error) {
		status, err := wp.Status()
		return status, err
	})).Methods(http.MethodGet)

	// System
	rv.Handle("/system/settings", systemHandler.GetSettings()).Methods(http.MethodGet)
	rv.Handle("/system/settings", systemHandler.SetSettings()).Methods(http.MethodPost)

	// Jobs
	rv.Handle("/jobs", jobsHandler.List()).Methods(http.MethodGet)            // list
	rv.Handle("/jobs/{jobId}", jobsHandler.Details()).Methods(http.MethodGet) // details

	// Keyring state ingestion
	rv.Handle("/keyring/state", keyringHandler.State()).Methods(http.MethodPost)
	rv.Handle("/keyring/snaps", keyringHandler.SnapState()).Methods(http.MethodPost)

	// Accounts
	rv.Handle("/accounts", accountHandler.List()).Methods(http.MethodGet)                               // list
	rv.Handle("/accounts/update", accountHandler.Update()).Methods(http.MethodPost)                     // reconcile
	rv.Handle("/accounts/backup", accountHandler.Backup()).Methods(http.MethodPost)                     // restore
	rv.Handle("/accounts/selected", accountHandler.Selected()).Methods(http.MethodGet)                  // selected details
	rv.Handle("/accounts/selected", accountHandler.Select()).Methods(http.MethodPost)                   // select
	rv.Handle("/accounts/address/{address}", accountHandler.DetailsByAddress()).Methods(http.MethodGet) // details by address
	rv.Handle("/accounts/{id}", accountHandler.Details()).Methods(http.MethodGet)                       // details
	rv.Handle("/accounts/{id}/name", accountHandler.Rename()).Methods(http.MethodPost)                  // rename

	// Account transaction history
	rv.Handle("/accounts/{address}/transactions", transactionHandler.List()).Methods(http.MethodGet)       // list
	rv.Handle("/accounts/{address}/transactions/sync", transactionHandler.Sync()).Methods(http.MethodPost) // sync

	// Rates
	rv.Handle("/rates", ratesHandler.List()).Methods(http.MethodGet)             // list
	rv.Handle("/rates/{symbol}", ratesHandler.Details()).Methods(http.MethodGet) // details

	// Phishing
	rv.Handle("/phishing/check", phishingHandler.Check()).Methods(http.MethodPost) // check hostname
	rv.Handle("/phishing/config", phishingHandler.Config()).Methods(http.MethodGet)

	h := http.TimeoutHandler(r, cfg.ServerRequestTimeout, "request timed out")
	h = handlers.UseCors(h)
	h = handlers.UseLogging(h)
	h = handlers.UseCompress(h)

	// Setup idempotency key middleware if it's enabled
	if !cfg.DisableIdempotencyMiddleware {
		var is handlers.IdempotencyStore
		switch cfg.IdempotencyMiddlewareDatabaseType {
		// Shared SQL/Gorm store (same as for main app)
		case handlers.IdempotencyStoreTypeShared.String():
			is = handlers.NewIdempotencyStoreGorm(db)
		// Redis, separate from app db
		case handlers.IdempotencyStoreTypeRedis.String():
			if cfg.IdempotencyMiddlewareRedisURL == "" {
				log.Fatal("idempotency middleware db set to redis but Redis URL is empty")
			}
			pool := &redis.Pool{
				MaxIdle:   80,
				MaxActive: 12000,
				Dial: func() (redis.Conn, error) {
					c, err := redis.DialURL(cfg.IdempotencyMiddlewareRedisURL)
					if err != nil {
						panic(err.Error())
					}
					return c, err
				},
			}

			client := pool.Get()

			defer func() {
				log.Info("Closing Redis client..")
				if err := client.Close(); err != nil {
					log.Warn(err)
				}
			}()

			is = handlers.NewIdempotencyStoreRedis(client)
		case handlers.IdempotencyStoreTypeLocal.String():
			is = handlers.NewIdempotencyStoreLocal()
		}

		h = handlers.UseIdempotency(h, handlers.IdempotencyHandlerOptions{
			Expiry: 1 * time.Hour,
			// Keyring state is a full snapshot, safe to repeat
			IgnorePaths: []string{"/v1/keyring", "/v1/phishing/check", "/v1/system"},
		}, is)
	}

	// Server boilerplate
	srv := &http.Server{
		Handler:      h,
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		WriteTimeout: 0, // Disabled, set cfg.ServerRequestTimeout instead
		ReadTimeout:  0, // Disabled, set cfg.ServerRequestTimeout instead
	}

	// Run our server in a goroutine so that it doesn't block.
	go func() {
		log.
			WithFields(log.Fields{
				"host": cfg.Host,
				"port": cfg.Port,
			}).
			Info("Server listening")
		if err := srv.ListenAndServe(); err != nil {
			log.Warn(err)
		}
	}()

	// Rate poller
	if !cfg.DisableRatePolling {
		ratePoller := rates.NewPoller(ratesService, systemService, ratesCfg.PollInterval)

		defer func() {
			ratePoller.Stop()
			log.Info("Stopped rate poller")
		}()

		ratePoller.Start()
		log.Info("Started rate poller")
	}

	// Phishing list refresher
	if !cfg.DisablePhishingRefresh {
		refresher := phishing.NewRefresher(phishingService, systemService, phishingCfg.RefreshInterval)

		defer func() {
			refresher.Stop()
			log.Info("Stopped phishing list refresher")
		}()

		refresher.Start()
		log.Info("Started phishing list refresher")
	}

	// Trap interupt or sigterm and gracefully shutdown the server
	c := make(chan os.Signal, 1)
	// We'll accept graceful shutdowns when quit via SIGINT (Ctrl+C)
	// SIGKILL, SIGQUIT or SIGTERM (Ctrl+/) will not be caught.
	signal.Notify(c, os.Interrupt)

	// Block until we receive our signal.
	sig := <-c

	log.Infof("Got signal: %s. Shutting down..", sig)

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warnf("Error in server shutdown: %s", err)
	}
}
