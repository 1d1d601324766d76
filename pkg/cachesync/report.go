package cachesync

import (
	"errors"
	"time"
)

// EntityResult is the outcome for one artwork (detail sync) or one artist
// (index sync).
type EntityResult struct {
	EntityID string `json:"entityId"`
	// Key is the cache key written, empty when the entity was skipped.
	Key     string `json:"key,omitempty"`
	Skipped bool   `json:"skipped,omitempty"`
	Err     error  `json:"-"`
	// Error mirrors Err for JSON output.
	Error string `json:"error,omitempty"`
}

// Report summarizes one procedure run.
type Report struct {
	Procedure  string         `json:"procedure"`
	Mode       Mode           `json:"mode"`
	Synced     int            `json:"synced"`
	Skipped    int            `json:"skipped"`
	Failed     int            `json:"failed"`
	StartedAt  time.Time      `json:"startedAt"`
	FinishedAt time.Time      `json:"finishedAt"`
	Results    []EntityResult `json:"results"`
}

func (r *Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Err joins the per-entity failures, or returns nil when there were none.
func (r *Report) Err() error {
	if r == nil || r.Failed == 0 {
		return nil
	}
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return errors.Join(errs...)
}

func (r *Report) synced(id, key string) {
	r.Synced++
	r.Results = append(r.Results, EntityResult{EntityID: id, Key: key})
}

func (r *Report) skipped(id string) {
	r.Skipped++
	r.Results = append(r.Results, EntityResult{EntityID: id, Skipped: true})
}

func (r *Report) failed(id, key string, err error) {
	r.Failed++
	r.Results = append(r.Results, EntityResult{EntityID: id, Key: key, Err: err, Error: err.Error()})
}
