package cli

import (
	"fmt"

	"employee_directory/store"

	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	var file string

	c := &cobra.Command{
		Use:   "seed",
		Short: "Load employees from a YAML fixture into the configured database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := store.Open(cfg)
			if err != nil {
				return err
			}
			defer closeDB(db)

			res, err := seedFrom(cmdContext(cmd), store.NewEmployeeStore(db), file)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d, skipped %d\n", res.Inserted, res.Skipped)
			return nil
		},
	}

	c.Flags().StringVarP(&file, "file", "f", "", "Seed file path (required)")
	_ = c.MarkFlagRequired("file")
	return c
}
