package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tvworks/repairdesk/internal/domain"
	"github.com/tvworks/repairdesk/internal/webserver"
)

type lookupPayload struct {
	Passkey string   `json:"passkey"`
	Items   []string `json:"items"`
}

func registerLookupRoutes() {
	webserver.ApiGET("/lookups", listLookups)
	webserver.ApiPUT("/lookups/:name", setLookup)
}

func listLookups(c echo.Context) error {
	out := make(map[string][]string, len(domain.LookupNames))
	for _, name := range domain.LookupNames {
		out[name] = deps.Lookups.Get(name)
	}
	return ok(c, out)
}

func setLookup(c echo.Context) error {
	name := c.Param("name")
	if !contains(domain.LookupNames, name) {
		return fail(c, http.StatusBadRequest, "INVALID_LOOKUP", "Unknown lookup list", nil)
	}
	var payload lookupPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse lookup payload", err.Error())
	}
	if !deps.Lookups.CheckPasskey(payload.Passkey) {
		return fail(c, http.StatusForbidden, "INVALID_PASSKEY", "Pass-key does not match", nil)
	}
	if err := deps.Lookups.Set(name, payload.Items); err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to persist lookup list", nil)
	}
	return ok(c, deps.Lookups.Get(name))
}
