package api

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Bind string // Address to bind to
	Port int    // Port to listen on
}

// APIResponse is the envelope for all JSON responses
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// AppendResponse is returned for a successful append
type AppendResponse struct {
	Offset      int64  `json:"offset"`
	Length      int    `json:"length"`
	SequenceKey string `json:"sequence_key"`
}

// RecordItem is one logical record delivered by a scan
type RecordItem struct {
	Offset int64  `json:"offset"`
	Data   []byte `json:"data"` // base64 in JSON
}

// ScanResponse is returned for a scan over a log
type ScanResponse struct {
	Records     []RecordItem `json:"records"`
	Corruptions int          `json:"corruptions"`
	EndOffset   int64        `json:"end_offset"`
	Truncated   bool         `json:"truncated"` // limit stopped the scan early
}
