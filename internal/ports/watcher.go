package ports

// Watcher monitors a project bundle for changes to its project file or lint
// configuration. Only one Watch call should be active at a time.
type Watcher interface {
	// Watch starts monitoring the directories containing paths. onChange is
	// called with the absolute path of each changed file in paths. The
	// callback may be invoked from any goroutine. Returns an error if a
	// directory doesn't exist or permissions are insufficient.
	Watch(paths []string, onChange func(filePath string)) error

	// Stop ends monitoring and releases all resources. After Stop returns,
	// no further onChange calls will fire. Safe to call multiple times.
	Stop() error
}
