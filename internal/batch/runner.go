package batch

import (
	"context"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rockysnow7/mlb-transformer/internal/parser"
)

// Failure records one transcript that failed to parse
type Failure struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Report summarizes a batch validation run over a directory tree
type Report struct {
	JobID      string    `json:"job_id"`
	Root       string    `json:"root"`
	Total      int       `json:"total"`
	Parsed     int       `json:"parsed"`
	Failed     int       `json:"failed"`
	Failures   []Failure `json:"failures"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Runner parses every transcript under a directory tree on a fixed
// worker pool. Parses are independent, so a failure in one file never
// stops the batch; it is just counted.
type Runner struct {
	workers int
}

// NewRunner creates a batch runner with the given worker count
func NewRunner(workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{workers: workers}
}

// NewJobID mints an id for a batch run
func NewJobID() string {
	return uuid.New().String()
}

// Run walks root for *.txt transcripts and parses each one. It returns
// a report even when every file fails; the returned error covers only
// the walk itself or context cancellation.
func (r *Runner) Run(ctx context.Context, jobID, root string) (*Report, error) {
	report := &Report{
		JobID:     jobID,
		Root:      root,
		Failures:  []Failure{},
		StartedAt: time.Now().UTC(),
	}

	paths, err := transcriptPaths(root)
	if err != nil {
		return nil, err
	}
	report.Total = len(paths)

	jobs := make(chan string)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				err := parseFile(path)

				mu.Lock()
				if err != nil {
					report.Failed++
					report.Failures = append(report.Failures, Failure{Path: path, Message: err.Error()})
				} else {
					report.Parsed++
				}
				mu.Unlock()
			}
		}()
	}

	for _, path := range paths {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		case jobs <- path:
		}
	}
	close(jobs)
	wg.Wait()

	// Walk order depends on the filesystem; sort so reports are stable
	sort.Slice(report.Failures, func(i, j int) bool {
		return report.Failures[i].Path < report.Failures[j].Path
	})

	report.FinishedAt = time.Now().UTC()
	log.Printf("Batch %s: parsed %d/%d transcripts under %s (%d failed)",
		report.JobID, report.Parsed, report.Total, root, report.Failed)

	return report, nil
}

// transcriptPaths collects every .txt file under root
func transcriptPaths(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".txt") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// parseFile reads and parses a single transcript
func parseFile(path string) error {
	text, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = parser.Parse(string(text))
	return err
}
