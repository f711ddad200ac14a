// Package config provides configuration management for stencil.
//
// This package handles loading, validating, and managing configuration from
// YAML files with environment variable overrides.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("stencil.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("stencil.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention STENCIL_SECTION_FIELD.
// For example:
//
//   - STENCIL_PARSER_MAX_DEPTH overrides parser.max_depth
//   - STENCIL_LINT_EXTENSIONS overrides lint.extensions (comma separated)
//   - STENCIL_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Example Configuration
//
//	parser:
//	  max_depth: 8
//	  max_nodes: 1000
//	  strict_close: true
//	lint:
//	  extensions: [".tmpl", ".txt"]
//	history:
//	  enabled: true
//	  path: "data/history.db"
//	  retention:
//	    days: 14
//	    schedule: "0 3 * * *"
//	telemetry:
//	  logging:
//	    level: "debug"
//	    format: "console"
//
// The CLI installs the loaded configuration with Initialize and reads it
// with Current.
package config
