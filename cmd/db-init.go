/*
Copyright © 2025 Michal Kratky

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/michalkratky/slovicka/internal/infrastructure/config"
	"github.com/michalkratky/slovicka/internal/infrastructure/database"
	"github.com/michalkratky/slovicka/internal/infrastructure/server"
)

// dbInitCmd creates the database schema and seeds default preferences.
var dbInitCmd = &cobra.Command{
	Use:   "db-init",
	Short: "Initialize the database schema and seed defaults",
	Long: `Applies the schema migrations and inserts the default preference
rows. Safe to run repeatedly; existing data is left untouched.
Note: go-sqlite3 requires CGO_ENABLED=1 at build time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger, err := server.NewLogger(cfg)
		if err != nil {
			return err
		}

		db, err := database.Connect(cfg.Database.Driver, cfg.Database.DSN)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()

		if err := database.Migrate(ctx, db); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
		logger.Info("database schema up to date")

		if err := database.SeedDefaults(ctx, db); err != nil {
			return fmt.Errorf("seed default preferences: %w", err)
		}
		logger.Info("default preferences seeded")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbInitCmd)
}
