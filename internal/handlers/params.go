package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
	"github.com/BruksfildServices01/service-scheduler/internal/middleware"
)

// uintParam reads a positive path parameter. On failure it answers 400
// and returns false.
func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Invalid "+name+".")
		return 0, false
	}
	return uint(v), true
}

// optionalUintQuery reads an optional positive query value. Absent or
// empty values give nil.
func optionalUintQuery(c *gin.Context, key string) (*uint, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_"+key, "Invalid "+key+".")
		return nil, false
	}
	id := uint(v)
	return &id, true
}

func requiredUintQuery(c *gin.Context, key string) (uint, bool) {
	v, ok := optionalUintQuery(c, key)
	if !ok {
		return 0, false
	}
	if v == nil {
		httperr.BadRequest(c, "missing_"+key, "Missing "+key+".")
		return 0, false
	}
	return *v, true
}

func actorID(id middleware.Identity) *uint {
	if id.UserID == 0 {
		return nil
	}
	uid := id.UserID
	return &uid
}
