package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kvasirdb/recordio/pkg/logstore"
)

// defaultScanLimit caps how many records one scan request returns.
const defaultScanLimit = 1000

// errScanLimit aborts a store scan once the response is full.
var errScanLimit = errors.New("scan limit reached")

// Server holds the API server state
type Server struct {
	store   *logstore.Store
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server. metrics may be nil to disable
// instrumentation.
func NewServer(store *logstore.Store, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		store:   store,
		config:  config,
		metrics: metrics,
	}
}

// handleHealth reports server liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleAppend appends the request body as one logical record.
func (s *Server) handleAppend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name := chi.URLParam(r, "log")

	data, err := io.ReadAll(r.Body)
	if err != nil {
		s.metrics.RecordLogOperation("append", false, time.Since(start))
		sendError(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	result, err := s.store.Append(name, data)
	if err != nil {
		s.metrics.RecordLogOperation("append", false, time.Since(start))
		sendError(w, err.Error(), storeErrorStatus(err))
		return
	}

	s.metrics.RecordLogOperation("append", true, time.Since(start))
	s.metrics.AddAppendedBytes(result.Length)
	sendSuccess(w, AppendResponse{
		Offset:      result.Offset,
		Length:      result.Length,
		SequenceKey: result.SequenceKey,
	})
}

// handleScan returns the records of a log starting at ?from, up to ?limit.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name := chi.URLParam(r, "log")

	from, err := queryInt64(r, "from", 0)
	if err != nil {
		sendError(w, "invalid from offset", http.StatusBadRequest)
		return
	}
	limit, err := queryInt64(r, "limit", defaultScanLimit)
	if err != nil || limit <= 0 {
		sendError(w, "invalid limit", http.StatusBadRequest)
		return
	}

	response := ScanResponse{Records: []RecordItem{}}
	stats, err := s.store.Scan(name, from, func(offset int64, record []byte) error {
		response.Records = append(response.Records, RecordItem{
			Offset: offset,
			Data:   append([]byte(nil), record...),
		})
		if int64(len(response.Records)) >= limit {
			return errScanLimit
		}
		return nil
	})
	if err != nil && !errors.Is(err, errScanLimit) {
		s.metrics.RecordLogOperation("scan", false, time.Since(start))
		sendError(w, err.Error(), storeErrorStatus(err))
		return
	}

	response.Truncated = errors.Is(err, errScanLimit)
	response.Corruptions = stats.Corruptions
	response.EndOffset = stats.EndOffset

	s.metrics.RecordLogOperation("scan", true, time.Since(start))
	s.metrics.AddCorruptions(stats.Corruptions)
	sendSuccess(w, response)
}

// handleStats returns size and sequence information for a log.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "log")

	stats, err := s.store.Stats(name)
	if err != nil {
		sendError(w, err.Error(), storeErrorStatus(err))
		return
	}
	sendSuccess(w, stats)
}

// handleListLogs lists the names of all logs in the store.
func (s *Server) handleListLogs(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List()
	if err != nil {
		sendError(w, err.Error(), storeErrorStatus(err))
		return
	}
	if names == nil {
		names = []string{}
	}
	sendSuccess(w, map[string][]string{"logs": names})
}

// storeErrorStatus maps store errors to HTTP status codes.
func storeErrorStatus(err error) int {
	switch {
	case errors.Is(err, logstore.ErrNoSuchLog):
		return http.StatusNotFound
	case errors.Is(err, logstore.ErrInvalidLogName):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func queryInt64(r *http.Request, key string, fallback int64) (int64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value < 0 {
		return 0, errors.New("invalid integer parameter")
	}
	return value, nil
}
