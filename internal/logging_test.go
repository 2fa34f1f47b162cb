package internal_test

import (
	"fmt"
	"log/slog"

	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal"
)

func ExampleSetLoggingHandler() {
	colors := []bool{false, true}
	for _, color := range colors {
		internal.SetLoggingHandler(slog.LevelDebug, color)
		slog.Debug("Lorem ipsum dolor sit amet.", "version", "v1.0")
		slog.Info("Consectetur adipiscing elit.", "vivamus", "ut accumsan elit", "maecenas", 4.23)
		slog.Warn("Mauris placerat molestie tempor.", "err", nil)
		slog.Error("Quisque et posuere libero.", "err", fmt.Errorf("pouet"))
	}
	// Output:
}
