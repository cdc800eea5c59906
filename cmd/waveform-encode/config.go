package main

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read as flag defaults. A .env file in the working
// directory is loaded first when present.
const (
	envDimensions      = "WAVEFORM_DIMENSIONS"
	envSamples         = "WAVEFORM_SAMPLES"
	envErrorCorrection = "WAVEFORM_ERROR_CORRECTION"
	envFormat          = "WAVEFORM_FORMAT"
	envOutput          = "WAVEFORM_OUTPUT"
	envCompression     = "WAVEFORM_COMPRESSION"
	envSampleRate      = "WAVEFORM_SAMPLE_RATE"
)

// CLI defaults
const (
	defaultDimensions  = 4
	defaultSamples     = 100
	defaultFormat      = formatPNG
	defaultOutput      = "waveform_demo.png"
	defaultCompression = "zstd"
	defaultText        = "Hello, World! 🌍"
)

type cliConfig struct {
	Dimensions      int
	Samples         int
	ErrorCorrection bool
	Format          string
	Output          string
	Compression     string
	SampleRate      int
}

// loadConfig returns the flag defaults after applying .env and the environment.
func loadConfig() cliConfig {
	_ = godotenv.Load()

	return cliConfig{
		Dimensions:      getEnvInt(envDimensions, defaultDimensions),
		Samples:         getEnvInt(envSamples, defaultSamples),
		ErrorCorrection: getEnvBool(envErrorCorrection, true),
		Format:          getEnv(envFormat, defaultFormat),
		Output:          getEnv(envOutput, defaultOutput),
		Compression:     getEnv(envCompression, defaultCompression),
		SampleRate:      getEnvInt(envSampleRate, 0),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: failed to parse %s as int, using default: %v", key, err)
		return defaultValue
	}
	return intValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Warning: failed to parse %s as bool, using default: %v", key, err)
		return defaultValue
	}
	return boolValue
}
