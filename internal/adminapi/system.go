package adminapi

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/tvworks/repairdesk/internal/webserver"
)

func registerSystemRoutes() {
	webserver.ApiGET("/system/info", getSystemInfo)
}

func getSystemInfo(c echo.Context) error {
	info := map[string]interface{}{
		"uptime_sec": int64(time.Since(startedAt).Seconds()),
		"intakes":    len(deps.Records.Intakes()),
		"repairs":    len(deps.Records.Repairs()),
	}
	if usage, err := cpu.Percent(0, false); err == nil && len(usage) > 0 {
		info["cpu_pct"] = usage[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info["mem_used_mb"] = vm.Used / 1024 / 1024
		info["mem_pct"] = vm.UsedPercent
	}
	return ok(c, info)
}
