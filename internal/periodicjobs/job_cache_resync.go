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

package periodicjobs

import (
	"context"
	"time"

	"github.com/artvault/artvault/pkg/cachesync"
	"github.com/artvault/artvault/pkg/logger"
)

// CacheResyncJobName identifies the periodic cache resync in logs.
const CacheResyncJobName = "artvault_cache_resync"

// SyncRunner runs both cache sync procedures.
type SyncRunner interface {
	Run(ctx context.Context) ([]*cachesync.Report, error)
}

// CacheResyncJob re-runs the cache sync so the cache catches up with durable
// writes, which do not write through.
type CacheResyncJob struct {
	runner   SyncRunner
	interval time.Duration
}

func NewCacheResyncJob(runner SyncRunner, interval time.Duration) *CacheResyncJob {
	return &CacheResyncJob{runner: runner, interval: interval}
}

// add the job to the periodic task manager
func (j *CacheResyncJob) AddToPeriodicTaskManager(mgr *PeriodicTaskManager) {
	mgr.AddTask(j)
}

func (j *CacheResyncJob) GetInterval() time.Duration {
	return j.interval
}

func (*CacheResyncJob) GetName() string {
	return CacheResyncJobName
}

func (j *CacheResyncJob) Run(ctx context.Context) error {
	log := logger.Logger(ctx)
	log.Info("starting cache resync")

	reports, err := j.runner.Run(ctx)
	for _, r := range reports {
		log.WithField("procedure", r.Procedure).
			WithField("synced", r.Synced).
			WithField("skipped", r.Skipped).
			WithField("failed", r.Failed).
			Info("cache resync procedure finished")
	}
	return err
}
