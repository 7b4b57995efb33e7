// Package config loads linqkit settings from a YAML file, a .env file and
// the process environment.
//
// Files are resolved by Resolver: an explicit path wins, then the file named
// by LINQKIT_CONFIG, then linqkit.yml in the usual cmd/, config/ and working
// directory locations. Environment variables override file values:
// LINQKIT_ENUMERABLE_ISOLATION sets enumerable.isolation and LOG_LEVEL sets
// logger.level.
//
// # Usage
//
//	var s Settings
//	err := config.LoadConfig("reports", &s, config.WithEnvFile(".env.local"))
package config
