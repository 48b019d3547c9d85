package constants

import "time"

// Client identification.
const (
	// DefaultUserAgent is sent when no User-Agent is configured.
	DefaultUserAgent = "console-client-go/1.0"
)

// Header names.
const (
	// AuthKeyHeader carries the console session key, both in login responses
	// and on authenticated console requests.
	AuthKeyHeader = "auth-key"

	// AuthorizationHeader carries the billing credential.
	AuthorizationHeader = "Authorization"
)

// Retry defaults, used only when retries are enabled.
const (
	// DefaultRetryWaitMin is the minimum wait between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait between retries.
	DefaultRetryWaitMax = 30 * time.Second
)

// Console API paths.
const (
	// APIPathStatus is the system status endpoint.
	APIPathStatus = "/console/status"

	// APIPathApplications is the applications collection.
	APIPathApplications = "/console/applications"

	// APIPathLogin is the developer login endpoint.
	APIPathLogin = "/console/home/login"

	// APIPathLogout is the developer logout endpoint.
	APIPathLogout = "/console/home/logout"

	// APIPathBillingApps is the billing applications collection.
	APIPathBillingApps = "/billing/apps"
)

// Application-scoped paths, appended to "/{appId}".
const (
	AppPathTables   = "/console/data/tables"
	AppPathCache    = "/console/cache"
	AppPathCounters = "/console/counters"
)

// Path suffixes.
const (
	PathCount = "count"
	PathReset = "reset"
)

// Status cache and mirror defaults.
const (
	// StatusCacheKey is the key of the status entry in shared mirrors.
	StatusCacheKey = "console.status"

	// DefaultStatusBucket is the NATS key-value bucket of the status mirror.
	DefaultStatusBucket = "console_status"

	// DefaultMirrorTimeout bounds a single mirror operation.
	DefaultMirrorTimeout = 2 * time.Second
)

// File permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Configuration.
const (
	// EnvPrefix is the prefix of configuration environment variables.
	EnvPrefix = "CONSOLE"

	// DefaultConfigName is the configuration file name without extension.
	DefaultConfigName = "config"

	// DefaultConfigType is the configuration file format.
	DefaultConfigType = "yml"
)
