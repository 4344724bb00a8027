package main

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/timmyz/newlongfor/internal/client/api"
	"github.com/timmyz/newlongfor/internal/client/config"
	"github.com/timmyz/newlongfor/internal/client/console"
	"github.com/timmyz/newlongfor/internal/logging"
)

func main() {
	cfg := config.LoadConfig()

	logger, closeLog, err := logging.NewFileLogger(cfg.LogFile)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer closeLog()

	client := api.NewHTTPClient(cfg.ServerURL, logger)
	app := console.NewApp(client, logger)

	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("%v", err)
	}
}
