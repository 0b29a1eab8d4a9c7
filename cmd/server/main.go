package main

import (
	"github.com/joeyoneill/CapHackathon2024-Backend-1/internal/server"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/internal/util"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/logger"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
