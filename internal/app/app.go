package app

import (
	"os"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/tvworks/repairdesk/config"
	"github.com/tvworks/repairdesk/internal/forwarder"
	"github.com/tvworks/repairdesk/internal/mirror"
	"github.com/tvworks/repairdesk/internal/store"
)

type Application struct {
	appConfig *config.AppConfig
	records   *store.RecordStore
	lookups   *store.LookupStore
	blobs     *store.BoltBlobStore
	archive   *mirror.Archive
	forward   *forwarder.Forwarder
	sched     *cron.Cron
}

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig       { return a.appConfig }
func (a *Application) Records() *store.RecordStore     { return a.records }
func (a *Application) Lookups() *store.LookupStore     { return a.lookups }
func (a *Application) Blobs() *store.BoltBlobStore     { return a.blobs }
func (a *Application) Forwarder() *forwarder.Forwarder { return a.forward }

// Scheduler returns the cron scheduler.
func (a *Application) Scheduler() *cron.Cron { return a.sched }

func (a *Application) Init(cfg *config.AppConfig) {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	a.initLogger(cfg)
	cfg.InitDirs()

	// Record/lookup/photo storage: one bbolt file, loaded once here.
	// A collection that fails to load starts empty ("no prior data").
	a.records, err = store.Open(cfg.StoragePath())
	if err != nil {
		zap.S().Fatalf("open storage failed: %v", err)
	}
	a.lookups = store.NewLookupStore(a.records, cfg.System.Passkey)
	a.blobs = store.NewBoltBlobStore(a.records)

	// Optional archive mirror; the append path degrades silently
	// when it is absent or failing.
	if cfg.Database.Enabled {
		a.archive, err = mirror.Open(cfg.Database, cfg.System.Workdir)
		if err != nil {
			zap.S().Errorf("archive mirror unavailable: %v", err)
		} else {
			a.records.SetArchiver(a.archive)
			zap.S().Infof("archive mirror connected, type: %s", cfg.Database.Type)
		}
	}

	a.forward = forwarder.New(cfg.Forward.Endpoint, cfg.Forward.Timeout)

	a.initJob()
}

func (a *Application) initLogger(cfg *config.AppConfig) {
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}
		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)
}

// Release releases application resources.
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.records != nil {
		_ = a.records.Close()
	}
	_ = zap.L().Sync()
}
