package ingest

import "fmt"

// Status classifies the outcome of one resource within a job.
type Status string

const (
	StatusSuccess Status = "success"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// ResourceResult records the outcome for a single fetched resource so a
// caller can retry exactly the failed subset instead of re-running blind.
type ResourceResult struct {
	Key    string `json:"key"`
	Status Status `json:"status"`
	Rows   int    `json:"rows,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Report aggregates per-resource outcomes for one job run.
type Report struct {
	Job     Job              `json:"job"`
	Results []ResourceResult `json:"results"`
}

func (r *Report) add(res ResourceResult) {
	r.Results = append(r.Results, res)
}

func (r *Report) success(key string, rows int) {
	r.add(ResourceResult{Key: key, Status: StatusSuccess, Rows: rows})
}

func (r *Report) skipped(key string, err error) {
	r.add(ResourceResult{Key: key, Status: StatusSkipped, Reason: err.Error()})
}

func (r *Report) failed(key string, err error) {
	r.add(ResourceResult{Key: key, Status: StatusFailed, Reason: err.Error()})
}

// Count returns the number of results with the given status.
func (r *Report) Count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

// TotalRows returns the number of rows written across all successful resources.
func (r *Report) TotalRows() int {
	n := 0
	for _, res := range r.Results {
		n += res.Rows
	}
	return n
}

// Failed returns the results that failed, for caller-driven retries.
func (r *Report) Failed() []ResourceResult {
	var out []ResourceResult
	for _, res := range r.Results {
		if res.Status == StatusFailed {
			out = append(out, res)
		}
	}
	return out
}

// Summary renders the aggregate counts as a single line.
func (r *Report) Summary() string {
	return fmt.Sprintf("%s: %d succeeded, %d skipped, %d failed, %d rows written",
		r.Job, r.Count(StatusSuccess), r.Count(StatusSkipped), r.Count(StatusFailed), r.TotalRows())
}
