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
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/michalkratky/slovicka/internal/app"
)

const importInputKey = "backup.import.input"

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import vocabulary from an xlsx workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		inputPath := viper.GetString(importInputKey)
		if inputPath == "" {
			return fmt.Errorf("--input is required")
		}

		container, cleanup, err := app.Initialize()
		if err != nil {
			return fmt.Errorf("initialize application: %w", err)
		}
		defer cleanup()

		file, err := os.Open(inputPath)
		if err != nil {
			return fmt.Errorf("open input file: %w", err)
		}
		defer file.Close()

		report, err := container.Backup.Import(ctx, file)
		if err != nil {
			return fmt.Errorf("import words: %w", err)
		}

		logger := container.Logger
		logger.Infof("imported %d words from %s", report.Imported, inputPath)
		if report.Skipped > 0 {
			logger.Infof("skipped %d duplicate words", report.Skipped)
		}
		for _, detail := range report.Errors {
			logger.Warn(detail)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringP("input", "i", "", "input xlsx path")
	bindFlagToViper(importInputKey, importCmd.Flags().Lookup("input"))
}
