package worker

import (
	"github.com/spec-kit/media-discovery/internal/service"
)

// StartActivityWorker registers the audit subscribers.
func StartActivityWorker(activity *service.ActivityService) {
	if activity == nil {
		return
	}
	activity.RegisterHandlers()
}
