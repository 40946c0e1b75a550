// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. .env file (godotenv; DOTENV names the file, ".env" by default)
//  2. Environment variables
//  3. Command-line flags
//  4. JSON or YAML config file
//
// Fields still zero after merging receive the package defaults.
//
// The main entry points are [GetStructuredConfig] for server configuration
// and [GetClientConfig] for the API client.
package config
