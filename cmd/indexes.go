package main

import (
	"errors"

	"github.com/creatorhub/catalog/bootstrap"
	"github.com/creatorhub/catalog/mongo"
	"github.com/spf13/cobra"
)

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create MongoDB indexes for the catalog collections",
	Long: `Creates the unique email index and the ordering indexes used by
catalog listings. serve runs the same step on startup; this command is
for provisioning ahead of a deploy. Existing indexes with the same name
are left untouched. Only applies when STORE_DRIVER=mongo.`,
	RunE: runIndexes,
}

func init() {
	rootCmd.AddCommand(indexesCmd)
}

func runIndexes(cmd *cobra.Command, _ []string) error {
	app, err := bootstrap.App(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	db := app.Stores.MongoDatabase()
	if db == nil {
		return errors.New("indexes require STORE_DRIVER=mongo")
	}
	if err := mongo.CreateIndexes(cmd.Context(), db, app.Logger); err != nil {
		return err
	}
	cmd.Println("Indexes are up to date.")
	return nil
}
