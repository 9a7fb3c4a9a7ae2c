package adminapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tvworks/repairdesk/internal/forwarder"
	"github.com/tvworks/repairdesk/internal/store"
)

// Deps carries everything the handlers need. Wired once from main.
type Deps struct {
	Records *store.RecordStore
	Lookups *store.LookupStore
	Blobs   store.BlobStore
	Forward *forwarder.Forwarder
}

var deps Deps
var startedAt time.Time

// Register wires all admin API routes.
func Register(d Deps) {
	deps = d
	startedAt = time.Now()

	registerIntakeRoutes()
	registerRepairRoutes()
	registerLookupRoutes()
	registerDashboardRoutes()
	registerHistoryRoutes()
	registerExportRoutes()
	registerPhotoRoutes()
	registerForwardRoutes()
	registerSystemRoutes()
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"code": 0,
		"data": data,
	})
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"code":    code,
		"message": message,
		"detail":  detail,
	})
}

func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"code":     0,
		"data":     rows,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page, pageSize = 1, 20
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	if ps, err := strconv.Atoi(c.QueryParam("perPage")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	} else if ps, err := strconv.Atoi(c.QueryParam("pageSize")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}

// pageBounds applies pagination to an in-memory collection.
func pageBounds(total, page, pageSize int) (lo, hi int) {
	lo = (page - 1) * pageSize
	if lo > total {
		lo = total
	}
	hi = lo + pageSize
	if hi > total {
		hi = total
	}
	return lo, hi
}
