package logger

// LogStages defines standardized stage names for consistent logging
var LogStages = struct {
	// Request lifecycle
	RequestReceived  string
	RequestValidated string
	RequestCompleted string
	RequestFailed    string

	// Extraction
	PromptBuild string
	Extraction  string
	Fallback    string

	// Upstream
	UpstreamRequest  string
	UpstreamResponse string
	UpstreamError    string

	// Registry
	RegistryRead  string
	RegistryWrite string

	// System
	Initialization string
	Configuration  string
	Shutdown       string
	HealthCheck    string
	TrackingSetup  string
	AuditWrite     string
}{
	RequestReceived:  "RequestReceived",
	RequestValidated: "RequestValidated",
	RequestCompleted: "RequestCompleted",
	RequestFailed:    "RequestFailed",

	PromptBuild: "PromptBuild",
	Extraction:  "Extraction",
	Fallback:    "Fallback",

	UpstreamRequest:  "UpstreamRequest",
	UpstreamResponse: "UpstreamResponse",
	UpstreamError:    "UpstreamError",

	RegistryRead:  "RegistryRead",
	RegistryWrite: "RegistryWrite",

	Initialization: "Initialization",
	Configuration:  "Configuration",
	Shutdown:       "Shutdown",
	HealthCheck:    "HealthCheck",
	TrackingSetup:  "TrackingSetup",
	AuditWrite:     "AuditWrite",
}

// ComponentNames defines standardized component names
var ComponentNames = struct {
	App            string
	Middleware     string
	Handler        string
	UpstreamClient string
	Registry       string
	PromptEngine   string
	Database       string
	Config         string
	ErrorHandler   string
}{
	App:            "App",
	Middleware:     "Middleware",
	Handler:        "Handler",
	UpstreamClient: "UpstreamClient",
	Registry:       "Registry",
	PromptEngine:   "PromptEngine",
	Database:       "Database",
	Config:         "Config",
	ErrorHandler:   "ErrorHandler",
}
