package main

import (
	"github.com/hiteshchouriya/rik/adapter/cli"
	"github.com/hiteshchouriya/rik/pkg/config"
	"github.com/hiteshchouriya/rik/pkg/observability"
)

func main() {
	cfg, err := config.Load()
	logLevel := "info"
	format := observability.LogFormatText
	if err == nil {
		logLevel = cfg.LogLevel
		if cfg.IsProduction() {
			format = observability.LogFormatJSON
		}
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:       logLevel,
		Format:      format,
		ServiceName: "rik",
	})
	cli.SetLogger(logger)

	cli.Execute()
}
