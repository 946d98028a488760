// Package config loads storefront configuration with Viper.
//
// Sources, lowest precedence first: the YAML file, a .env file loaded with
// godotenv, then the process environment. Environment variables name keys
// with dots and dashes replaced by underscores, so BACKEND_BASE_URL sets
// backend.base_url. Only keys present in the file or passed WithKeys can
// be overridden.
//
//	var cfg MyConfig
//	err := config.Load("storefront", &cfg, config.WithConfigFile(path))
package config
