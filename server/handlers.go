package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/poiesic/gitkb/responder"
)

const (
	msgQueryRequired   = "Query is required and must be a non-empty string"
	msgRouteNotFound   = "Route not found"
	msgInternalError   = "Internal server error"
	msgRequestTooLarge = "Request body too large"
)

// timestampLayout is ISO 8601 in UTC with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

type agentRequest struct {
	Query any `json:"query"`
}

type agentResponse struct {
	Success   bool   `json:"success"`
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}

type topicsResponse struct {
	Success bool     `json:"success"`
	Topics  []string `json:"topics"`
	Count   int      `json:"count"`
}

type knowledgeInfo struct {
	Entries int    `json:"entries"`
	Digest  string `json:"digest"`
}

type healthResponse struct {
	Success   bool          `json:"success"`
	Status    string        `json:"status"`
	Timestamp string        `json:"timestamp"`
	Knowledge knowledgeInfo `json:"knowledge"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func timestamp() string {
	return time.Now().UTC().Format(timestampLayout)
}

func (s *Server) handleAgent(w http.ResponseWriter, r *http.Request) {
	var req agentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, msgRequestTooLarge)
			return
		}
		s.logger.Debug("malformed agent request", "request_id", RequestIDFromContext(r.Context()), "err", err)
		writeError(w, http.StatusBadRequest, msgQueryRequired)
		return
	}

	query, ok := req.Query.(string)
	if !ok || strings.TrimSpace(query) == "" {
		writeError(w, http.StatusBadRequest, msgQueryRequired)
		return
	}

	result := s.svc.GenerateResponse(query)
	if failure, ok := result.(responder.Failure); ok {
		s.logger.Error("error in agent route",
			"request_id", RequestIDFromContext(r.Context()),
			"err", failure.Fault,
		)
	}

	writeJSON(w, http.StatusOK, agentResponse{
		Success:   result.Success(),
		Response:  result.Response(),
		Timestamp: timestamp(),
	})
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	topics := s.svc.AvailableTopics()
	if topics == nil {
		topics = []string{}
	}
	writeJSON(w, http.StatusOK, topicsResponse{
		Success: true,
		Topics:  topics,
		Count:   len(topics),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	set := s.svc.Knowledge()
	writeJSON(w, http.StatusOK, healthResponse{
		Success:   true,
		Status:    "healthy",
		Timestamp: timestamp(),
		Knowledge: knowledgeInfo{
			Entries: set.Len(),
			Digest:  set.Digest().Hex(),
		},
	})
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, msgRouteNotFound)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent, so an encode error has nowhere to go.
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Success: false, Error: msg})
}
