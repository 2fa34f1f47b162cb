package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/config"
	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/diff"
	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/inspect"
	rpt "github.com/Snowflake-Labs/sfgrantreport-sub000/internal/report"
)

// compare reconciles two captured snapshots of the same account.
func compare(conf config.Config) error {
	left, _, err := inspect.LoadFolder(conf.LeftFolder)
	if err != nil {
		return fmt.Errorf("left: %w", err)
	}
	right, _, err := inspect.LoadFolder(conf.RightFolder)
	if err != nil {
		return fmt.Errorf("right: %w", err)
	}

	differences, err := diff.Compare(left.Slice(), right.Slice())
	if err != nil {
		return err
	}
	slog.Info("Snapshots compared.",
		"left", left.Len(),
		"right", right.Len(),
		"differences", len(differences),
	)

	err = os.MkdirAll(conf.OutputFolder, 0o755)
	if err != nil {
		return err
	}
	leftLabel := filepath.Base(conf.LeftFolder)
	rightLabel := filepath.Base(conf.RightFolder)
	return writeFile(outPath(conf, "grant-differences"), func(f *os.File) error {
		return rpt.WriteDifferences(f, differences, leftLabel, rightLabel)
	})
}
