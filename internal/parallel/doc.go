// Package parallel runs independent checks over media files with bounded
// concurrency.
//
// It provides:
//   - WorkerPool: a bounded worker pool collecting results and errors
//   - CheckFiles: validates pooled media files, used by "ryo doctor"
package parallel
