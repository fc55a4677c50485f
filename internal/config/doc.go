// Package config loads the application configuration.
//
// # Resolution Order
//
// Each field is resolved from the first source that sets it:
//
//  1. Environment variables (APPSHELL_*), including a .env file in the
//     working directory
//  2. The TOML config file (~/.config/appshell/config.toml by default)
//  3. Built-in defaults
//
// A missing config file is not an error, so the application runs without any
// configuration.
//
// # Fields
//
//	base_url                  APPSHELL_BASE_URL          https://api.example.com
//	request_timeout_seconds   APPSHELL_REQUEST_TIMEOUT   30
//	resource_timeout_seconds  APPSHELL_RESOURCE_TIMEOUT  2x request timeout
//	store                     APPSHELL_STORE             file (file|memory|redis)
//	store_path                APPSHELL_STORE_PATH        ~/.config/appshell/settings.toml
//	redis_url                 APPSHELL_REDIS_URL         required for store=redis
//	log_level                 APPSHELL_LOG_LEVEL         info
//	log_format                APPSHELL_LOG_FORMAT        text (text|json)
//	log_file                  APPSHELL_LOG_FILE          ~/.local/state/appshell/appshell.log
//	metrics_addr              APPSHELL_METRICS_ADDR      empty disables /metrics
//
// # Path Expansion
//
// The config path, store_path and log_file accept a leading ~ and are made
// absolute.
//
// # Error Handling
//
// Load fails on unreadable or malformed TOML, malformed timeout overrides and
// values rejected by Validate.
package config
