package main

import (
	flags "github.com/jessevdk/go-flags"
)

type config struct {
	ShowVersion bool   `long:"version" description:"Display version information and exit"`
	Debug       bool   `long:"debug" description:"Start in debug mode"`
	DataDir     string `long:"datadir" description:"The directory to store netwatch.db in" default:"./data"`
	Listen      string `long:"listen" description:"Interface/port to listen for API connections" default:"localhost:9104"`
	Net         string `long:"net" description:"The connectivity source" choice:"networkmanager" choice:"mock" default:"networkmanager"`
}

func loadConfig() (*config, error) {
	cfg := config{}

	parser := flags.NewParser(&cfg, flags.Default)

	_, err := parser.Parse()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
