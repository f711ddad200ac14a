// Package retention prunes old lint history.
//
// A Pruner deletes records older than the configured number of days and
// then trims the store to the configured record count. A Scheduler runs the
// pruner on a cron schedule:
//
//	pruner := retention.NewPruner(store, retention.FromConfig(cfg.History.Retention))
//	if err := pruner.Start(ctx); err != nil {
//	    return err
//	}
//	defer pruner.Stop()
package retention
