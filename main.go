package main

import (
	"github.com/rpdata/rpscraper/cmd"
	"github.com/rpdata/rpscraper/internal/config"
)

func main() {
	config.LoadConfig()
	cmd.Execute()
}
