// Package config loads, defaults and validates the task service settings.
//
// Values come from an optional config.yaml and from environment variables
// prefixed with TASKS_ (for example TASKS_DATABASE_URL), environment
// variables taking precedence. The unprefixed variables used by the rest of
// the deployment (PORT, DATABASE_URL, USER_SERVICE_URL and NODE_ENV) are
// honoured as fallbacks.
package config
