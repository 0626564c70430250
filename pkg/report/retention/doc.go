// Package retention prunes stored validation reports.
//
// A Pruner deletes reports older than RetentionDays and then the oldest
// reports beyond MaxReports. Start runs it on a cron schedule:
//
//	pruner := retention.NewPruner(store, &retention.Config{
//	    RetentionDays: 30,
//	    PruneSchedule: "0 3 * * *",
//	})
//	if err := pruner.Start(ctx); err != nil {
//	    return err
//	}
//	defer pruner.Stop()
package retention
