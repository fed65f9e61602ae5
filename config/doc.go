// Package config loads gitkb configuration.
//
// Configuration starts from DefaultConfig, is optionally overlaid with a YAML
// file (Load), and finally with environment variables (ApplyEnv). PORT is
// honored so the service drops into platforms that assign it. EnvLookup
// layers a dotenv file underneath the process environment.
//
// Example file:
//
//	server:
//	  port: 3000
//	  enable_cors: true
//	  static_dir: ./public
//	knowledge:
//	  file: ./knowledge.yaml
//	retrieval:
//	  top_k: 3
//	  cache_ttl: 5m
//	logging:
//	  level: info
//	  format: json
package config
