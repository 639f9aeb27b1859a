// Package config builds loggers from YAML or TOML files.
//
// A minimal file:
//
//	level: audit
//	level_value: 35
//	custom_levels:
//	  notice: 45
//	fields:
//	  service: api
//	outputs:
//	  - type: console
//	    color: auto
//	  - type: file
//	    target: /var/log/api.log
//	    rotation:
//	      max_size_mb: 50
//	      interval: 24h
//
// Load decodes and validates; Build turns the result into a
// *logger.Logger. Decoding and validation failures wrap
// ErrInvalidConfig. Level conflicts are only detected by Build.
package config
