/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artvault/artvault/pkg/apperrors"
	"github.com/artvault/artvault/pkg/cachesync"
	"github.com/artvault/artvault/pkg/config"
	"github.com/artvault/artvault/pkg/logger"
	"github.com/artvault/artvault/pkg/records"
	"github.com/artvault/artvault/pkg/store"
)

// SyncRunner runs a full cache sync on demand.
type SyncRunner interface {
	Run(ctx context.Context) ([]*cachesync.Report, error)
}

type Handlers struct {
	config  *config.AppConfig
	cache   *store.Store
	records records.Store
	sync    SyncRunner
}

func NewHandlers(cfg *config.AppConfig, cacheStore *store.Store, recordStore records.Store, syncRunner SyncRunner) *Handlers {
	return &Handlers{
		config:  cfg,
		cache:   cacheStore,
		records: recordStore,
		sync:    syncRunner,
	}
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Status reports liveness.
func (h *Handlers) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": h.config.App.Name,
		"version": h.config.App.Version,
		"status":  "running",
	})
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInvalidIdentifier):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err with its mapped status. Client errors carry the
// error text; server errors are logged and answered with message only.
func respondError(c *gin.Context, err error, message string) {
	status := statusFor(err)
	if status < http.StatusInternalServerError {
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}
	logger.Logger(c.Request.Context()).WithError(err).Error(message)
	c.JSON(status, ErrorResponse{Error: message})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}
