package domain

import "time"

// RunInfo records the last successful run of a non-phony target. The
// runner compares the stored hashes against the current taskfile and
// output files to decide whether the target is up to date.
type RunInfo struct {
	Target      string    `json:"target"`
	CommandHash string    `json:"command_hash"`
	OutputHash  string    `json:"output_hash"`
	Timestamp   time.Time `json:"timestamp"`
}
