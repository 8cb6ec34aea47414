package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
)

// @title                       Probuild API
// @version                     1.0
// @description                 Leads, jobs and configurable job workflow for a fabrication shop.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg("probuild failed")
		os.Exit(1)
	}
}
