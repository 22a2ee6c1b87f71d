package index

// ProgressReporter provides callbacks for reporting indexing progress.
// Implementations can display progress bars, log messages, or remain silent.
type ProgressReporter interface {
	// OnDiscoveryStart is called when file discovery begins.
	OnDiscoveryStart()

	// OnDiscoveryComplete is called when file discovery finishes.
	OnDiscoveryComplete(files int)

	// OnIndexingStart is called before files are extracted and indexed.
	OnIndexingStart(totalFiles int)

	// OnFileIndexed is called after each file is processed.
	OnFileIndexed(fileName string)

	// OnComplete is called when indexing completes successfully.
	OnComplete(stats *Stats)
}

// NoOpProgressReporter is a progress reporter that does nothing.
// Used when progress reporting is disabled (e.g., --quiet flag).
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnDiscoveryStart()              {}
func (n *NoOpProgressReporter) OnDiscoveryComplete(files int)  {}
func (n *NoOpProgressReporter) OnIndexingStart(totalFiles int) {}
func (n *NoOpProgressReporter) OnFileIndexed(fileName string)  {}
func (n *NoOpProgressReporter) OnComplete(stats *Stats)        {}
