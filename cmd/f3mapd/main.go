package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/F3-Nation/f3-nation-map-sub001/internal/cache"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/config"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/database"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/derive"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/directory"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/dispatcher"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/handlers"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/influx"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/logging"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/monitor"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/places"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/search"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/selection"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/session"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/store"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/worker"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Version and BuildDate can be set at build time via ldflags.
var (
	Version   string = "0.0.1"
	BuildDate string = "unknown"

	AppName string = "f3mapd"
)

var (
	// SlogManager handles all slog-based logging
	SlogManager *logging.SlogManager

	// Logger is the slog logger (convenience reference)
	Logger *slog.Logger

	// DBManager owns the GORM connection (Postgres with SQLite fallback)
	DBManager *database.Manager

	// InfluxManager ships engine metrics when influx.enabled is set
	InfluxManager *influx.Manager

	SessionStartTime time.Time = time.Now()

	// Services
	handlerService  *handlers.Service
	workerManager   *worker.Manager
	monitorService  *monitor.Service
	eventDispatcher *dispatcher.Dispatcher
)

func main() {
	configDir := flag.String("config", ".", "directory containing f3map.cfg.json")
	launchQuery := flag.String("query", "", "launch query params, e.g. locationId=7&eventId=101 or lat=35.2&lng=-80.8&zoom=12")
	flag.Parse()

	// Log to stdout until the log file is open
	SlogManager = logging.NewSlogManager()
	SlogManager.Setup(nil, "info")
	Logger = SlogManager.Logger()

	if err := config.Load(*configDir); err != nil {
		Logger.Warn("Failed to load config, using defaults!", "error", err)
	} else {
		Logger.Info("Loaded config")
	}

	logsDir := viper.GetString("logsDir")
	if _, err := os.Stat(logsDir); os.IsNotExist(err) {
		os.Mkdir(logsDir, 0755)
	}

	logFilePath := logging.LogFilePath(logsDir, AppName, SessionStartTime)
	logFile, err := os.OpenFile(logFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		Logger.Error("Failed to create/open log file!", "error", err, "path", logFilePath)
	} else {
		SlogManager.Setup(logFile, viper.GetString("logLevel"))
		Logger = SlogManager.Logger()
		Logger.Info("Logging to file", "path", logFilePath)
	}

	Logger.Info("Starting up...", "version", Version, "buildDate", BuildDate)

	zlog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	storageCfg := config.GetStorageConfig()

	DBManager = database.NewManager(zlog)
	DBManager.SqliteFilePath = filepath.Join(logsDir, fmt.Sprintf("%s_%s.db", AppName, SessionStartTime.Format("20060102_150405")))
	if storageCfg.Type != "memory" {
		Logger.Info("Connecting to database...")
		if err := DBManager.Connect(); err != nil {
			Logger.Error("Database connection failed", "error", err)
			os.Exit(1)
		}
		if err := DBManager.Setup(); err != nil {
			Logger.Error("Database setup failed", "error", err)
			os.Exit(1)
		}
		Logger.Info("Database connection established", "dialect", DBManager.DB.Dialector.Name(), "local", DBManager.ShouldSaveLocal)
	}

	// one-shot maintenance commands
	if args := flag.Args(); len(args) > 0 {
		if err := runCommand(args); err != nil {
			Logger.Error("Command failed", "command", args[0], "error", err)
			os.Exit(1)
		}
		return
	}

	source, err := directory.NewSource(storageCfg, DBManager.DB)
	if err != nil {
		Logger.Error("Failed to create directory source", "error", err)
		os.Exit(1)
	}
	if err := source.Init(); err != nil {
		Logger.Error("Failed to initialize directory source", "error", err)
		os.Exit(1)
	}
	defer source.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dir := cache.NewDirectoryCache()
	markers, err := source.GetAllLocationMarkers(ctx)
	if err != nil {
		Logger.Warn("Initial directory load failed, starting empty", "error", err)
	} else {
		dir.Replace(markers)
		Logger.Info("Directory loaded", "markers", len(markers))
	}

	filters := store.NewFilterStore()
	view := store.NewViewStore()
	persister := store.NewViewPersister(viper.GetString("stateFile"))
	deriver := derive.New(dir, filters, view)

	mapCfg := config.GetMapConfig()
	sel := selection.New(dir, view, Logger, selection.Config{
		CloseZoom: mapCfg.CloseZoom,
		Debounce:  config.GetSelectionConfig().Debounce,
	})

	placesCfg := config.GetPlacesConfig()
	merger := search.New(dir, places.New(placesCfg.BaseURL, placesCfg.APIKey), view, Logger, config.GetSearchConfig())

	workerManager = worker.NewManager(worker.Dependencies{
		Directory:  dir,
		Source:     source,
		Deriver:    deriver,
		View:       view,
		Persister:  persister,
		LogManager: SlogManager,
	})
	workerManager.Start(ctx)
	defer workerManager.Stop()

	// seed the view before handlers can observe it
	sessionCtx := session.NewContext()
	launch := session.Resolve(*launchQuery, dir, persister, mapCfg)
	sessionCtx.SetLaunch(launch)
	view.Seed(launch.Center, launch.Zoom)
	if launch.Panel.LocationID != nil {
		sel.OpenPanel(*launch.Panel.LocationID, launch.Panel.EventID)
	}
	deriver.Recompute()
	Logger.Info("Session bootstrapped",
		"source", launch.Source,
		"lat", launch.Center.Lat, "lng", launch.Center.Lng, "zoom", launch.Zoom)

	if viper.GetBool("influx.enabled") {
		InfluxManager = influx.NewManager(zlog, filepath.Join(logsDir, "influx_backup"))
		if err := InfluxManager.Connect(); err != nil {
			Logger.Warn("InfluxDB unavailable, metrics will be backed up locally", "error", err)
		}
	}

	eventDispatcher, err = dispatcher.New(logging.NewDispatcherLogger(zlog))
	if err != nil {
		Logger.Error("Failed to create dispatcher", "error", err)
		os.Exit(1)
	}

	handlerService = handlers.NewService(handlers.Dependencies{
		Directory:  dir,
		Filters:    filters,
		View:       view,
		Deriver:    deriver,
		Selection:  sel,
		Search:     merger,
		Worker:     workerManager,
		Influx:     InfluxManager,
		LogManager: SlogManager,
	}, sessionCtx)
	handlerService.RegisterHandlers(eventDispatcher)

	monitorService = monitor.NewService(monitor.Dependencies{
		DB:              DBManager.DB,
		LogManager:      SlogManager,
		Directory:       dir,
		Deriver:         deriver,
		Selection:       sel,
		Search:          merger,
		WorkerManager:   workerManager,
		StatusDir:       logsDir,
		IsDatabaseValid: func() bool { return DBManager.IsValid },
	})
	if !monitorService.IsRunning() {
		monitorService.Start()
	}
	defer monitorService.Stop()

	// TimescaleDB compression only applies on a real Postgres
	if DBManager.IsValid && !DBManager.ShouldSaveLocal {
		err := monitorService.ValidateHypertables(map[string][]string{
			"engine_performances": {"marker_count"},
		})
		if err != nil {
			Logger.Warn("Hypertable setup failed, performance rows stay uncompressed", "error", err)
		}
	}

	if InfluxManager != nil {
		go shipPerformance(ctx)
	}

	go readCommands(ctx)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	Logger.Info("Shutting down", "signal", s.String())

	if err := persister.Save(view.Get()); err != nil {
		Logger.Warn("Failed to persist view state on shutdown", "error", err)
	}
	if DBManager.ShouldSaveLocal {
		if err := DBManager.DumpMemoryToDisk(); err != nil {
			Logger.Warn("Failed to dump local database", "error", err)
		}
	}
}

// runCommand handles one-shot maintenance subcommands and exits.
func runCommand(args []string) error {
	switch strings.ToLower(args[0]) {
	case "setupdb":
		if DBManager.DB == nil {
			if err := DBManager.Connect(); err != nil {
				return err
			}
		}
		if err := DBManager.Setup(); err != nil {
			return err
		}
		Logger.Info("DB setup complete.")
		return nil
	case "seed":
		if len(args) < 2 {
			return fmt.Errorf("usage: seed <directory.json>")
		}
		return seedDatabase(args[1])
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// readCommands reads dispatcher commands from stdin, one per line:
// the command token followed by space-separated args. Results of
// :GET: commands are printed to stdout.
func readCommands(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		result, err := eventDispatcher.Dispatch(dispatcher.Event{
			Command:   fields[0],
			Args:      fields[1:],
			Timestamp: time.Now(),
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			continue
		}
		if result != nil {
			fmt.Println(result)
		}
	}
}

// shipPerformance periodically forwards engine performance samples to
// InfluxDB. Failed writes fall through to the gzip backup writer.
func shipPerformance(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, perf := monitorService.GetProgramStatus()
			err := InfluxManager.WritePoint(ctx, "engine_performance", influx.PerformancePoint(perf))
			if err != nil {
				Logger.Debug("Failed to write performance point", "error", err)
			}
		}
	}
}
