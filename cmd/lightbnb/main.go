package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/lightbnb/lightbnb/clients"
	"github.com/lightbnb/lightbnb/config"
	"github.com/lightbnb/lightbnb/internal/jsonlog"
	"github.com/lightbnb/lightbnb/internal/mailer"
	"github.com/lightbnb/lightbnb/repository"
	"github.com/lightbnb/lightbnb/repository/postgres"
	"github.com/lightbnb/lightbnb/service"
)

// app defines the application's layers and shared resources.
type app struct {
	config  config.Config
	logger  *jsonlog.Logger
	service service.Service
	out     io.Writer
}

func main() {
	logger := jsonlog.New(os.Stderr, jsonlog.LevelInfo)

	configPath := flag.String("config", os.Getenv("LIGHTBNB_CONFIG"), "Path to a YAML config file")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	// Initialize configuration
	cfg, err := config.Decode(*configPath)
	if err != nil {
		logger.PrintFatal(err, nil)
		os.Exit(1)
	}
	level, err := jsonlog.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.PrintFatal(err, nil)
		os.Exit(1)
	}
	logger = jsonlog.New(os.Stderr, level)

	err = run(cfg, logger, flag.Args())
	if err != nil {
		logger.PrintFatal(err, map[string]string{"command": flag.Arg(0)})
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *jsonlog.Logger, args []string) error {
	// Initialize database connection
	db, err := postgres.OpenDBConn(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	logger.PrintInfo("database connection pool established", map[string]string{"env": cfg.Env})

	// Other shared resources: waitgroup, listing cache, mailer and photo storage
	var wg sync.WaitGroup
	cache := service.NewListingCache(cfg)
	go cache.Start()
	defer cache.Stop()
	var mail service.Mailer
	if cfg.MailEnabled() {
		mail = mailer.New(cfg)
	}
	var photos service.PhotoStore
	if cfg.S3Enabled() {
		bucket, err := clients.NewPhotoBucket(cfg)
		if err != nil {
			return err
		}
		photos = bucket
	}

	// Application layers
	repo := repository.New(db, logger)
	svc := service.New(cfg, &wg, logger, repo, cache, mail, photos)

	a := &app{
		config:  cfg,
		logger:  logger,
		service: svc,
		out:     os.Stdout,
	}
	err = a.dispatch(args)
	logger.PrintDebug("completing background tasks", nil)
	svc.Wait()
	return err
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: lightbnb [-config path] <command> [flags]

Commands:
  user          show a user by -id or -email
  register      create a user from -name, -email and -password
  reservations  list the reservations of -guest
  properties    search listings by -city, -min-price, -max-price and -min-rating
  add-property  add the property described by the YAML -file
  import        add every property of a YAML -file

Flags:
`)
	flag.PrintDefaults()
}
