// Package watch reports changes to model description files.
//
// FileWatcher wraps fsnotify. Files are watched through their parent
// directory so that editors which save by replacing the file are noticed,
// and directories are watched recursively for files with a matching
// extension. Events arriving within the debounce interval are merged:
//
//	cfg := watch.DefaultConfig()
//	cfg.Paths = []string{"models/sales.yaml", "models/shared"}
//	fw, err := watch.NewFileWatcher(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	defer fw.Stop()
//	err = fw.Watch(ctx, func(changed []string) error {
//	    return revalidate(changed)
//	})
package watch
