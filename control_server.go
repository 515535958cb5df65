package main

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/hako/durafmt"
)

const maxControlBodyBytes = 64 << 10

// stateResponse is the /api/state payload.
type stateResponse struct {
	Miner    StatsSnapshot `json:"miner"`
	RigID    string        `json:"rig_id"`
	Degraded bool          `json:"degraded"`
	Uptime   string        `json:"uptime"`
	Version  string        `json:"version"`
}

type controlCachedJSON struct {
	payload   []byte
	updatedAt time.Time
	expiresAt time.Time
}

// ControlServer is the loopback HTTP surface the platform shell drives the
// miner through. State reads are cached briefly because pollers hammer
// /api/state; every mutating endpoint is a plain POST.
type ControlServer struct {
	m     *Miner
	start time.Time

	jsonCacheMu sync.RWMutex
	jsonCache   map[string]controlCachedJSON
}

func newControlServer(m *Miner, start time.Time) *ControlServer {
	return &ControlServer{
		m:         m,
		start:     start,
		jsonCache: make(map[string]controlCachedJSON),
	}
}

func (s *ControlServer) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/state", s.handleState)
	mux.HandleFunc("/api/chatlog", s.handleChatLog)
	mux.HandleFunc("/api/login", s.handleLogin)
	mux.HandleFunc("/api/chat/send", s.handleChatSend)
	mux.HandleFunc("/api/chat/next", s.handleChatNext)
	mux.HandleFunc("/api/threads/increase", s.handleThreadsIncrease)
	mux.HandleFunc("/api/threads/decrease", s.handleThreadsDecrease)
	mux.HandleFunc("/api/override", s.handleOverride)
	mux.HandleFunc("/api/override/clear", s.handleOverrideClear)
	mux.HandleFunc("/api/screen", s.handleScreenState)
	mux.HandleFunc("/api/power", s.handlePowerState)
}

func (s *ControlServer) cachedJSON(key string, ttl time.Duration, build func() ([]byte, error)) ([]byte, time.Time, error) {
	now := time.Now()
	s.jsonCacheMu.RLock()
	entry, ok := s.jsonCache[key]
	if ok && now.Before(entry.expiresAt) && len(entry.payload) > 0 {
		payload := entry.payload
		s.jsonCacheMu.RUnlock()
		return payload, entry.updatedAt, nil
	}
	s.jsonCacheMu.RUnlock()

	payload, err := build()
	if err != nil {
		return nil, time.Time{}, err
	}
	updatedAt := time.Now()
	s.jsonCacheMu.Lock()
	s.jsonCache[key] = controlCachedJSON{
		payload:   payload,
		updatedAt: updatedAt,
		expiresAt: updatedAt.Add(ttl),
	}
	s.jsonCacheMu.Unlock()
	return payload, updatedAt, nil
}

func (s *ControlServer) serveCachedJSON(w http.ResponseWriter, key string, ttl time.Duration, build func() ([]byte, error)) {
	payload, updatedAt, err := s.cachedJSON(key, ttl, build)
	if err != nil {
		logger.Error("control cached json error", "key", key, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("X-JSON-Updated-At", updatedAt.UTC().Format(time.RFC3339))
	if _, err := w.Write(payload); err != nil {
		logger.Debug("control response write", "key", key, "error", err)
	}
}

func (s *ControlServer) writeJSON(w http.ResponseWriter, status int, v any) {
	payload, err := fastJSONMarshalIndent(v)
	if err != nil {
		logger.Error("control response marshal", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(payload); err != nil {
		logger.Debug("control response write", "error", err)
	}
}

func decodeControlBody(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxControlBodyBytes))
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return fmt.Errorf("empty request body")
	}
	return fastJSONUnmarshal(body, v)
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func (s *ControlServer) handleState(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	s.serveCachedJSON(w, "state", stateCacheTTL, func() ([]byte, error) {
		return fastJSONMarshalIndent(stateResponse{
			Miner:    s.m.GetState(),
			RigID:    s.m.RigID(),
			Degraded: s.m.degraded,
			Uptime:   durafmt.Parse(time.Since(s.start).Round(time.Second)).LimitFirstN(2).String(),
			Version:  versionString(),
		})
	})
}

func (s *ControlServer) handleChatLog(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 1000 {
			http.Error(w, "limit must be 1..1000", http.StatusBadRequest)
			return
		}
		limit = n
	}
	entries, err := s.m.db.RecentChatLog(limit)
	if err != nil {
		logger.Error("chat log query failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, struct {
		Entries []chatLogEntry `json:"entries"`
	}{Entries: entries})
}

type controlLoginRequest struct {
	Username string `json:"username"`
	Wallet   string `json:"wallet,omitempty"`
	RigID    string `json:"rig_id,omitempty"`
	Agent    string `json:"agent,omitempty"`
	Config   string `json:"config,omitempty"`
}

// handleLogin blocks until the pool answers. The outcome code rides in the
// body; HTTP status stays 200 for any answered exchange so shells only parse
// one shape.
func (s *ControlServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req controlLoginRequest
	if err := decodeControlBody(r, &req); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	result := s.m.Login(Session{
		Username:     req.Username,
		Wallet:       req.Wallet,
		RigID:        req.RigID,
		Agent:        req.Agent,
		ConfigString: req.Config,
	})
	s.writeJSON(w, http.StatusOK, result)
}

func (s *ControlServer) handleChatSend(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req struct {
		Message string `json:"message"`
	}
	if err := decodeControlBody(r, &req); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	id, err := s.m.SendChat(req.Message)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.writeJSON(w, http.StatusOK, struct {
		ID int64 `json:"id"`
	}{ID: id})
}

// handleChatNext pops the oldest unread message. Destructive, so it is a
// POST; 204 means the queue is empty.
func (s *ControlServer) handleChatNext(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	msg, ok := s.m.NextChat()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.writeJSON(w, http.StatusOK, msg)
}

type threadsResponse struct {
	Threads    int `json:"threads"`
	MaxAllowed int `json:"max_allowed"`
}

func (s *ControlServer) handleThreadsIncrease(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	n := s.m.IncreaseThreads()
	s.writeJSON(w, http.StatusOK, threadsResponse{Threads: n, MaxAllowed: s.m.threads.MaxAllowed()})
}

func (s *ControlServer) handleThreadsDecrease(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	n := s.m.DecreaseThreads()
	s.writeJSON(w, http.StatusOK, threadsResponse{Threads: n, MaxAllowed: s.m.threads.MaxAllowed()})
}

type activityResponse struct {
	Activity string `json:"activity"`
}

func (s *ControlServer) handleOverride(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req struct {
		Mine bool `json:"mine"`
	}
	if err := decodeControlBody(r, &req); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	s.m.OverrideActivity(req.Mine)
	s.writeJSON(w, http.StatusOK, activityResponse{Activity: s.m.activity.Current().String()})
}

func (s *ControlServer) handleOverrideClear(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	s.m.ClearActivityOverride()
	s.writeJSON(w, http.StatusOK, activityResponse{Activity: s.m.activity.Current().String()})
}

func (s *ControlServer) handleScreenState(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req struct {
		Locked bool `json:"locked"`
	}
	if err := decodeControlBody(r, &req); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	s.m.ReportLockScreenState(req.Locked)
	s.writeJSON(w, http.StatusOK, activityResponse{Activity: s.m.activity.Current().String()})
}

func (s *ControlServer) handlePowerState(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req struct {
		OnBattery bool `json:"on_battery"`
	}
	if err := decodeControlBody(r, &req); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	s.m.ReportPowerState(req.OnBattery)
	s.writeJSON(w, http.StatusOK, activityResponse{Activity: s.m.activity.Current().String()})
}
