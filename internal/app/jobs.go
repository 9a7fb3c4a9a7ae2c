package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/zap"

	"github.com/tvworks/repairdesk/internal/export"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@every 60s", func() {
		go a.SchedSystemMonitorTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		a.SchedSnapshotTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	if a.archive != nil {
		_, err = a.sched.AddFunc("@every 6h", func() {
			a.SchedArchiveResyncTask()
		})
		if err != nil {
			zap.S().Errorf("init job error %s", err.Error())
		}
	}

	a.sched.Start()
}

// SchedSystemMonitorTask samples host load into the log.
func (a *Application) SchedSystemMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	usage, err := cpu.Percent(0, false)
	if err != nil || len(usage) == 0 {
		return
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		return
	}
	zap.L().Debug("system monitor",
		zap.Float64("cpu_pct", usage[0]),
		zap.Float64("mem_pct", vm.UsedPercent))
}

// SchedSnapshotTask dumps both full collections as CSV into the
// exports directory.
func (a *Application) SchedSnapshotTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	dir := filepath.Join(a.appConfig.System.Workdir, "exports")
	stamp := time.Now().Format("20060102")

	write := func(name string, fn func(f *os.File) error) {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			zap.L().Error("snapshot create failed", zap.String("file", name), zap.Error(err))
			return
		}
		defer f.Close()
		if err := fn(f); err != nil {
			zap.L().Error("snapshot write failed", zap.String("file", name), zap.Error(err))
		}
	}

	write("intakes_"+stamp+".csv", func(f *os.File) error {
		return export.SnapshotIntakesCSV(f, a.records.Intakes())
	})
	write("repairs_"+stamp+".csv", func(f *os.File) error {
		return export.SnapshotRepairsCSV(f, a.records.Repairs())
	})
	zap.L().Info("collection snapshots written", zap.String("dir", dir))
}

// SchedArchiveResyncTask rewrites the archive mirror from the full
// in-memory collections.
func (a *Application) SchedArchiveResyncTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	if err := a.archive.Resync(a.records.Intakes(), a.records.Repairs()); err != nil {
		zap.L().Warn("archive resync failed", zap.Error(err))
		return
	}
	zap.L().Info("archive resynced")
}
