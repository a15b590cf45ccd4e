package main

import (
	"flag"
	"os"
)

type flags struct {
	configPath string
	useMock    bool
}

func initFlags() (flags, error) {
	configPath := flag.String("config", "", "Path to the yaml config file; env only when empty")
	useMock := flag.Bool("mock", false, "Run against the in-memory backend instead of HTTP")

	flag.Parse()

	if value := os.Getenv("CONFIG_PATH"); value != "" {
		configPath = &value
	}

	if value, exist := os.LookupEnv("MOCK_BACKEND"); exist && value != "" {
		mock := value == "1" || value == "true"
		useMock = &mock
	}

	return flags{
		configPath: *configPath,
		useMock:    *useMock,
	}, nil
}
