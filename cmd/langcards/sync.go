package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/langcards/internal/config"
	"github.com/at-ishikawa/langcards/internal/datasync"
	"github.com/at-ishikawa/langcards/internal/storage"
)

func newSyncCommand() *cobra.Command {
	var targetConfigFile string
	var userIDs []string
	var dryRun bool
	var updateExisting bool

	command := &cobra.Command{
		Use:   "sync",
		Short: "Copy vocabulary into the storage of another config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := openEnvironment(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = env.close()
			}()

			loader, err := config.NewConfigLoader(targetConfigFile)
			if err != nil {
				return fmt.Errorf("config.NewConfigLoader() > %w", err)
			}
			targetConfig, err := loader.Load()
			if err != nil {
				return fmt.Errorf("failed to load target configuration: %w", err)
			}
			target, err := storage.Open(ctx, targetConfig.Storage)
			if err != nil {
				return fmt.Errorf("storage.Open() > %w", err)
			}
			env.onClose(target.Close)

			if len(userIDs) == 0 {
				userID, err := env.userID(ctx)
				if err != nil {
					return err
				}
				userIDs = []string{userID}
			}

			out := cmd.OutOrStdout()
			syncer := datasync.NewSyncer(env.kv, target, out)
			result, err := syncer.Sync(ctx, userIDs, datasync.SyncOptions{
				DryRun:         dryRun,
				UpdateExisting: updateExisting,
			})
			if err != nil {
				return fmt.Errorf("syncer.Sync() > %w", err)
			}

			prefix := ""
			if dryRun {
				prefix = "[dry run] "
			}
			_, _ = fmt.Fprintf(out, "%sSynced collections: %d new, %d updated, %d skipped, %d unchanged, %d missing\n",
				prefix, result.New, result.Updated, result.Skipped, result.Unchanged, result.Missing)
			return nil
		},
	}
	command.Flags().StringVar(&targetConfigFile, "to", "", "config file of the storage to copy into")
	command.Flags().StringSliceVar(&userIDs, "user", nil, "user ids to copy (defaults to the current user)")
	command.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be copied without writing")
	command.Flags().BoolVar(&updateExisting, "update-existing", false, "overwrite collections that already exist in the target")
	_ = command.MarkFlagRequired("to")
	return command
}
