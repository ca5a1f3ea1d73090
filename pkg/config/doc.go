// Package config loads env-tagged configuration structs, reading the
// optional .env file once and caching each parsed type for the lifetime
// of the process.
package config
