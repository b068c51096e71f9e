package cli

import (
	"errors"
	"fmt"

	"github.com/RoyceAzure/lab/ordercenter/internal/appcontext"
	"github.com/RoyceAzure/lab/ordercenter/internal/infra/repository/db"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var errMemoryStore = errors.New("STORE_DRIVER=memory has no schema, use postgres or sqlite")

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd, opts, func(conn *gorm.DB) error {
				if err := db.NewDbDao(conn).InitMigrate(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migration completed")
				return nil
			})
		},
	}
}

// withDatabase 開啟 STORE_DRIVER 指定的資料庫並在 fn 結束後關閉
func withDatabase(cmd *cobra.Command, opts *rootOptions, fn func(*gorm.DB) error) error {
	cf, err := opts.loadConfig()
	if err != nil {
		return err
	}
	logger := appcontext.NewLogger(cf, cmd.ErrOrStderr())

	conn, closeFn, err := appcontext.OpenDatabase(cmd.Context(), cf, logger)
	if err != nil {
		return err
	}
	defer closeFn()
	if conn == nil {
		return errMemoryStore
	}
	return fn(conn)
}
