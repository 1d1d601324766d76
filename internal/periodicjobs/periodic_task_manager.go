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

// Package periodicjobs runs background jobs on fixed intervals next to the
// HTTP API.
package periodicjobs

import (
	"context"
	"sync"
	"time"

	"github.com/artvault/artvault/pkg/logger"
)

const defaultInitialDelay = 10 * time.Second

// PeriodicTask is a job the manager runs every GetInterval.
type PeriodicTask interface {
	GetName() string
	GetInterval() time.Duration
	Run(ctx context.Context) error
}

// PeriodicTaskManager owns the registered tasks and their tickers.
type PeriodicTaskManager struct {
	mu    sync.Mutex
	tasks []PeriodicTask

	// InitialDelay postpones the first run of every task.
	InitialDelay time.Duration
}

func NewPeriodicTaskManager() *PeriodicTaskManager {
	return &PeriodicTaskManager{InitialDelay: defaultInitialDelay}
}

// AddTask registers a task. Tasks with a non-positive interval are ignored.
func (m *PeriodicTaskManager) AddTask(task PeriodicTask) {
	if task.GetInterval() <= 0 {
		logger.Logger(context.Background()).WithField("task", task.GetName()).
			Info("periodic task disabled, interval is not positive")
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = append(m.tasks, task)
}

// Tasks returns the registered task names.
func (m *PeriodicTaskManager) Tasks() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.tasks))
	for _, t := range m.tasks {
		names = append(names, t.GetName())
	}
	return names
}

// RunAll runs every task on its own ticker and blocks until ctx is done.
// A failing run is logged and the task keeps its schedule.
func (m *PeriodicTaskManager) RunAll(ctx context.Context) error {
	m.mu.Lock()
	tasks := append([]PeriodicTask(nil), m.tasks...)
	m.mu.Unlock()

	log := logger.Logger(ctx)
	if len(tasks) == 0 {
		log.Info("no periodic tasks registered")
		<-ctx.Done()
		return nil
	}

	select {
	case <-ctx.Done():
		log.Info("context canceled during initialization")
		return nil
	case <-time.After(m.InitialDelay):
	}

	var wg sync.WaitGroup
	for _, task := range tasks {
		wg.Add(1)
		go func(task PeriodicTask) {
			defer wg.Done()
			m.runTask(ctx, task)
		}(task)
	}
	log.WithField("count", len(tasks)).Info("periodic tasks started")

	wg.Wait()
	log.Info("periodic tasks stopped")
	return nil
}

func (m *PeriodicTaskManager) runTask(ctx context.Context, task PeriodicTask) {
	ctx = logger.AddValuesToContext(ctx, map[string]interface{}{"task": task.GetName()})
	log := logger.Logger(ctx)

	ticker := time.NewTicker(task.GetInterval())
	defer ticker.Stop()

	for {
		start := time.Now()
		if err := task.Run(ctx); err != nil {
			log.WithError(err).Error("periodic task failed")
		} else {
			log.WithField("duration", time.Since(start).String()).Debug("periodic task finished")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
