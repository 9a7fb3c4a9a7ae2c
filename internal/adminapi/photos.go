package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tvworks/repairdesk/internal/webserver"
)

func registerPhotoRoutes() {
	webserver.ApiGET("/photos/:id", getPhoto)
}

func getPhoto(c echo.Context) error {
	data, err := deps.Blobs.Get(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Photo not found", nil)
	}
	return c.Blob(http.StatusOK, http.DetectContentType(data), data)
}
