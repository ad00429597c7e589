// Package job tracks background commands: one goroutine per job, monotonic
// IDs, and eviction of finished jobs once their completion has been
// observed.
package job

import (
	"fmt"
	"sync"
)

type Status int

const (
	Running Status = iota
	Done
	Failed
)

func (s Status) String() string {
	switch s {
	case Running:
		return "Running"
	case Done:
		return "Done"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Job is one background command. Output and error are valid after the done
// channel closes.
type Job struct {
	ID      int
	Command string

	status Status
	output string
	err    error
	done   chan struct{}
}

// Wait blocks until the job finishes and returns its captured output.
func (j *Job) Wait() (string, error) {
	<-j.done
	return j.output, j.err
}

// Registry owns all background jobs of one session.
type Registry struct {
	mu   sync.Mutex
	next int
	jobs []*Job
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Submit starts run in its own goroutine and returns the tracked job
// immediately. IDs grow monotonically for the life of the registry.
func (r *Registry) Submit(command string, run func() (string, error)) *Job {
	r.mu.Lock()
	r.next++
	j := &Job{
		ID:      r.next,
		Command: command,
		status:  Running,
		done:    make(chan struct{}),
	}
	r.jobs = append(r.jobs, j)
	r.mu.Unlock()

	go func() {
		out, err := run()
		r.mu.Lock()
		j.output = out
		j.err = err
		if err != nil {
			j.status = Failed
		} else {
			j.status = Done
		}
		r.mu.Unlock()
		close(j.done)
	}()
	return j
}

// List formats every tracked job, newest last. The most recent job carries
// the "+" marker and the one before it "-". Finished jobs are evicted after
// this observation, so each appears at most once as Done or Failed.
func (r *Registry) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines := make([]string, 0, len(r.jobs))
	for i, j := range r.jobs {
		lines = append(lines, formatJob(j, r.marker(i)))
	}
	r.evictFinished()
	return lines
}

// Status formats a single job by ID. Like List, a finished job is evicted
// once reported.
func (r *Registry) Status(id int) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, j := range r.jobs {
		if j.ID == id {
			line := formatJob(j, r.marker(i))
			if j.status != Running {
				r.jobs = append(r.jobs[:i], r.jobs[i+1:]...)
			}
			return line, true
		}
	}
	return "", false
}

// Find returns the tracked job with the given ID.
func (r *Registry) Find(id int) (*Job, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, j := range r.jobs {
		if j.ID == id {
			return j, true
		}
	}
	return nil, false
}

// Latest returns the most recently submitted job still being tracked.
func (r *Registry) Latest() (*Job, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.jobs) == 0 {
		return nil, false
	}
	return r.jobs[len(r.jobs)-1], true
}

// Remove drops a job from tracking regardless of state.
func (r *Registry) Remove(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, j := range r.jobs {
		if j.ID == id {
			r.jobs = append(r.jobs[:i], r.jobs[i+1:]...)
			return
		}
	}
}

func (r *Registry) marker(i int) string {
	switch {
	case i == len(r.jobs)-1:
		return "+"
	case i == len(r.jobs)-2:
		return "-"
	default:
		return " "
	}
}

func (r *Registry) evictFinished() {
	kept := r.jobs[:0]
	for _, j := range r.jobs {
		if j.status == Running {
			kept = append(kept, j)
		}
	}
	r.jobs = kept
}

func formatJob(j *Job, marker string) string {
	return fmt.Sprintf("[%d]%s %-10s %s", j.ID, marker, j.status, j.Command)
}
