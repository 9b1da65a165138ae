package app

import (
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"github.com/shirou/gopsutil/process"
	"go.uber.org/zap"

	"github.com/openpdv/pdvserver/pkg/metrics"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@every 30s", func() {
		go a.SchedSystemMonitorTask()
		go a.SchedProcessMonitorTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	if a.appConfig.Backup.Enabled {
		spec := a.appConfig.Backup.CronSpec
		if spec == "" {
			spec = "@daily"
		}
		_, err = a.sched.AddFunc(spec, func() {
			a.SchedDatabaseBackupTask()
		})
		if err != nil {
			zap.S().Errorf("init backup job error %s", err.Error())
		}

		_, err = a.sched.AddFunc("@daily", func() {
			a.SchedPruneBackupsTask()
		})
		if err != nil {
			zap.S().Errorf("init backup prune job error %s", err.Error())
		}
	}

	a.sched.Start()
}

// SchedSystemMonitorTask system monitor
func (a *Application) SchedSystemMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	_cpuuse, err := cpu.Percent(0, false)
	if err == nil && len(_cpuuse) > 0 {
		metrics.SetGauge("system_cpuuse", int64(_cpuuse[0]*100))
	}

	_meminfo, err := mem.VirtualMemory()
	if err == nil {
		metrics.SetGauge("system_memuse", int64(_meminfo.Used/1024/1024))
	}
}

// SchedProcessMonitorTask app process monitor
func (a *Application) SchedProcessMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return
	}

	cpuuse, err := p.CPUPercent()
	if err == nil {
		metrics.SetGauge("pdvserver_cpuuse", int64(cpuuse*100))
	}

	meminfo, err := p.MemoryInfo()
	if err == nil {
		metrics.SetGauge("pdvserver_memuse", int64(meminfo.RSS/1024/1024))
	}
}

// SchedDatabaseBackupTask writes the daily database dump.
func (a *Application) SchedDatabaseBackupTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	path, err := a.BackupDatabase()
	if err != nil {
		zap.L().Error("scheduled backup failed", zap.Error(err))
		return
	}
	zap.L().Info("scheduled backup completed", zap.String("path", path))
}

// SchedPruneBackupsTask removes dump files past the retention window.
func (a *Application) SchedPruneBackupsTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	keepDays := a.settings.GetInt("backup", "keep_days")
	if keepDays <= 0 {
		keepDays = a.appConfig.Backup.KeepDays
	}
	if keepDays <= 0 {
		return
	}

	removed, err := a.PruneBackups(keepDays)
	if err != nil {
		zap.L().Error("backup prune failed", zap.Error(err))
		return
	}
	if removed > 0 {
		zap.L().Info("pruned expired backups", zap.Int("removed", removed), zap.Int("keep_days", keepDays))
	}
}
