package handlers

import (
	"github.com/BruksfildServices01/service-scheduler/internal/audit"
	"github.com/BruksfildServices01/service-scheduler/internal/middleware"
)

func writeAudit(
	d *audit.Dispatcher,
	id middleware.Identity,
	action string,
	entity string,
	entityID *uint,
	meta any,
) {
	d.Dispatch(audit.Event{
		ProviderID: id.ProviderID,
		UserID:     actorID(id),
		Action:     action,
		Entity:     entity,
		EntityID:   entityID,
		Metadata:   meta,
	})
}
