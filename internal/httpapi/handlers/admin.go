package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artvault/artvault/pkg/cachesync"
	"github.com/artvault/artvault/pkg/logger"
)

type SyncResponse struct {
	Reports []*cachesync.Report `json:"reports"`
	Error   string              `json:"error,omitempty"`
}

// TriggerSync runs both sync procedures and returns their reports. A failed
// run answers 500 with whatever reports completed.
func (h *Handlers) TriggerSync(c *gin.Context) {
	reports, err := h.sync.Run(c.Request.Context())
	if err != nil {
		logger.Logger(c.Request.Context()).WithError(err).Error("on-demand cache sync failed")
		c.JSON(http.StatusInternalServerError, SyncResponse{Reports: reports, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, SyncResponse{Reports: reports})
}
