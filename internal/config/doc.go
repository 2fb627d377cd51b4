// Package config manages user-level settings stored at ~/.devdeck/config.yaml.
// It layers defaults, the config file and DEVDECK_* environment variables with
// Viper and exposes them as a typed Settings value: poll and alert timings,
// API endpoints, the HTTP timeout and the locations of the store and log files.
package config
