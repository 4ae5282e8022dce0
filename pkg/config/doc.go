// Package config loads env-tagged configuration structs from the process
// environment, with optional .env file support for development.
package config
