package ui

import "sync/atomic"

type Stats struct {
	SourcesOK        atomic.Int64
	SourcesSkipped   atomic.Int64
	TotalChapters    atomic.Int64
	InferredChapters atomic.Int64
	TotalBytes       atomic.Int64
}
