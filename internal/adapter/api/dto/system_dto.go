package dto

// MemoryInfo descreve o uso de memória do processo
type MemoryInfo struct {
	Used  string `json:"used"`
	Total string `json:"total"`
	RSS   string `json:"rss,omitempty"`
}

// HealthResponse representa a resposta de GET /health
type HealthResponse struct {
	Status      string     `json:"status"`
	Timestamp   Timestamp  `json:"timestamp" swaggertype:"string"`
	Uptime      string     `json:"uptime"`
	Memory      MemoryInfo `json:"memory"`
	GoVersion   string     `json:"goVersion"`
	Environment string     `json:"environment"`
}

// RateLimitInfo descreve a política de limite de requisições
type RateLimitInfo struct {
	WindowMs string `json:"windowMs"`
	Max      string `json:"max"`
}

// StatusResponse representa a resposta de GET /api/status
type StatusResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Timestamp Timestamp         `json:"timestamp" swaggertype:"string"`
	Endpoints map[string]string `json:"endpoints"`
	RateLimit RateLimitInfo     `json:"rateLimit"`
}

// EndpointDoc documenta um endpoint em GET /api/docs
type EndpointDoc struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Description string            `json:"description"`
	Body        map[string]string `json:"body,omitempty"`
	Response    map[string]string `json:"response,omitempty"`
}

// DocsResponse representa a resposta de GET /api/docs
type DocsResponse struct {
	Title     string        `json:"title"`
	Version   string        `json:"version"`
	Endpoints []EndpointDoc `json:"endpoints"`
}
