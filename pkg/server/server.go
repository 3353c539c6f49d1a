package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/yurifrl/ynabel/pkg/config"
	"github.com/yurifrl/ynabel/pkg/executors"
	"github.com/yurifrl/ynabel/pkg/matcher"
	"github.com/yurifrl/ynabel/pkg/parser"
	"github.com/yurifrl/ynabel/pkg/ynab"
)

// Server handles HTTP requests for label matching and syncing
type Server struct {
	config *config.Config
	logger *log.Logger
	mux    *http.ServeMux
	parser *parser.Parser
	runs   sync.Map // run id -> []executors.UpdateLog
}

// New creates a new HTTP server
func New(config *config.Config, logger *log.Logger) *Server {
	return &Server{
		config: config,
		logger: logger,
		mux:    http.NewServeMux(),
		parser: parser.New(logger),
	}
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	s.setupRoutes()
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/budgets", s.withLogging(s.handleBudgets))
	s.mux.HandleFunc("/api/budgets/", s.withLogging(s.handleBudgetAccounts))
	s.mux.HandleFunc("/api/match", s.withLogging(s.handleMatch))
	s.mux.HandleFunc("/api/sync", s.withLogging(s.handleSync))
	s.mux.HandleFunc("/api/undo", s.withLogging(s.handleUndo))
	s.mux.HandleFunc("/api/logs/", s.withLogging(s.handleLogs))
}

func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	token := r.URL.Query().Get("token")
	if token == "" {
		s.respondError(w, r, http.StatusBadRequest, "token required", nil)
		return
	}

	ynabClient := ynab.New(token)
	budgetsResponse, err := ynabClient.Budget().GetBudgets()
	if err != nil {
		s.respondError(w, r, http.StatusBadGateway, "failed to fetch budgets", err)
		return
	}

	var budgets []interface{}
	if budgetsResponse != nil {
		budgets = make([]interface{}, len(budgetsResponse))
		for i, budget := range budgetsResponse {
			budgets[i] = budget
		}
	}

	s.logger.Info("budgets response", "budgets_count", len(budgets))

	if err := s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"budgets": budgets,
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

func (s *Server) handleBudgetAccounts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	budgetID := strings.TrimPrefix(r.URL.Path, "/api/budgets/")
	if budgetID == "" {
		s.respondError(w, r, http.StatusBadRequest, "budget_id required", nil)
		return
	}

	token := r.URL.Query().Get("token")
	if token == "" {
		s.respondError(w, r, http.StatusBadRequest, "token required", nil)
		return
	}

	ynabClient := ynab.New(token)
	accountsResponse, err := ynabClient.Account().GetAccounts(budgetID, nil)
	if err != nil {
		s.respondError(w, r, http.StatusBadGateway, "failed to fetch accounts", err)
		return
	}

	var accounts []interface{}
	if accountsResponse != nil && accountsResponse.Accounts != nil {
		accounts = make([]interface{}, len(accountsResponse.Accounts))
		for i, account := range accountsResponse.Accounts {
			accounts[i] = account
		}
	}

	s.logger.Info("accounts response", "budget_id", budgetID, "accounts_count", len(accounts))

	if err := s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "success",
		"accounts": accounts,
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

// MatchRow is a simplified resolved match for JSON responses.
type MatchRow struct {
	LabelID       string  `json:"label_id"`
	Date          string  `json:"date"`
	Payee         string  `json:"payee"`
	Memo          string  `json:"memo"`
	Amount        float64 `json:"amount"`
	TransactionID string  `json:"transaction_id,omitempty"`
	Matched       bool    `json:"matched"`
}

// resolveMatches parses the uploaded label file and runs the matching
// pipeline against the requested account. Shared by match and sync handlers.
func (s *Server) resolveMatches(r *http.Request) ([]matcher.Match, string, string, error) {
	file, header, err := r.FormFile("labels")
	if err != nil {
		return nil, "", "", fmt.Errorf("labels file required")
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to read labels file")
	}

	token := r.FormValue("token")
	budgetID := r.FormValue("budget_id")
	accountID := r.FormValue("account_id")
	if token == "" || budgetID == "" || accountID == "" {
		return nil, "", "", fmt.Errorf("token, budget_id and account_id required")
	}

	labels, err := s.parser.ProcessBytes(data, header.Filename)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to parse labels: %w", err)
	}

	ynabClient := ynab.New(token)
	remoteTxs, err := ynabClient.Transaction().GetTransactionsByAccount(budgetID, accountID)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to fetch remote transactions: %w", err)
	}

	candidates := matcher.CandidatesForAllLabels(labels, remoteTxs)
	matches := matcher.ResolveBestMatches(candidates)
	return matches, token, budgetID, nil
}

func matchRows(matches []matcher.Match) []MatchRow {
	rows := make([]MatchRow, 0, len(matches))
	for _, m := range matches {
		row := MatchRow{
			LabelID: m.Label.ID,
			Date:    m.Label.DateString(),
			Payee:   m.Label.Payee,
			Memo:    m.Label.Memo,
			Amount:  float64(m.Label.Amount) / 1000.0,
		}
		if m.Transaction != nil {
			row.TransactionID = m.Transaction.ID
			row.Matched = true
		}
		rows = append(rows, row)
	}
	return rows
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	matches, _, _, err := s.resolveMatches(r)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	rows := matchRows(matches)
	matched := 0
	for _, row := range rows {
		if row.Matched {
			matched++
		}
	}
	s.logger.Info("match complete", "labels", len(rows), "matched", matched)

	if err := s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"matches": rows,
		"matched": matched,
		"total":   len(rows),
		"csv":     string(executors.MatchCSV(matches)),
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	matches, token, budgetID, err := s.resolveMatches(r)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	finalized := executors.FinalizeMatches(matches, executors.ComposeAppendMemo(s.config.Memo.Separator))

	ynabClient := ynab.New(token)
	logs, err := executors.SyncLabels(budgetID, finalized, ynabClient.Transaction())
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "sync failed", err)
		return
	}

	runID := newRunID()
	s.runs.Store(runID, logs)

	succeeded := 0
	for _, l := range logs {
		if l.Succeeded {
			succeeded++
		}
	}
	s.logger.Info("sync complete", "run_id", runID, "succeeded", succeeded, "failed", len(logs)-succeeded)

	if err := s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "success",
		"run_id":    runID,
		"logs":      logs,
		"succeeded": succeeded,
		"failed":    len(logs) - succeeded,
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	runID := r.FormValue("run_id")
	token := r.FormValue("token")
	budgetID := r.FormValue("budget_id")
	if runID == "" || token == "" || budgetID == "" {
		s.respondError(w, r, http.StatusBadRequest, "run_id, token and budget_id required", nil)
		return
	}

	value, ok := s.runs.Load(runID)
	if !ok {
		s.respondError(w, r, http.StatusNotFound, "run not found", nil)
		return
	}
	priorLogs, ok := value.([]executors.UpdateLog)
	if !ok {
		s.respondError(w, r, http.StatusInternalServerError, "internal type assertion error", nil)
		return
	}

	ynabClient := ynab.New(token)
	logs, err := executors.UndoSync(budgetID, priorLogs, ynabClient.Transaction())
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "undo failed", err)
		return
	}

	undoRunID := newRunID()
	s.runs.Store(undoRunID, logs)

	s.logger.Info("undo complete", "run_id", runID, "undo_run_id", undoRunID)

	if err := s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"run_id": undoRunID,
		"logs":   logs,
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

// handleLogs serves the update logs of a previous run as YAML so the user can
// keep them and undo later, even after a server restart.
func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	runID := strings.TrimPrefix(r.URL.Path, "/api/logs/")
	if runID == "" {
		s.respondError(w, r, http.StatusBadRequest, "run_id required", nil)
		return
	}

	value, ok := s.runs.Load(runID)
	if !ok {
		s.respondError(w, r, http.StatusNotFound, "run not found", nil)
		return
	}
	logs, ok := value.([]executors.UpdateLog)
	if !ok {
		s.respondError(w, r, http.StatusInternalServerError, "internal type assertion error", nil)
		return
	}

	data, err := yaml.Marshal(map[string]interface{}{"logs": logs})
	if err != nil {
		s.respondError(w, r, http.StatusInternalServerError, "failed to encode logs", err)
		return
	}

	w.Header().Set("Content-Type", "application/yaml")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.yaml\"", runID))
	if _, err := w.Write(data); err != nil {
		s.logger.Warn("failed to write yaml response", "err", err)
	}
}

func newRunID() string {
	return fmt.Sprintf("%x", time.Now().UnixNano())
}

// --- helpers ---

// writeJSON encodes v as JSON with the given status and writes headers.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// respondError logs the error and returns a minimal JSON error body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		s.logger.Warn("request error", "status", status, "msg", message, "err", err, "method", r.Method, "path", r.URL.Path)
	} else {
		s.logger.Warn("request error", "status", status, "msg", message, "method", r.Method, "path", r.URL.Path)
	}
	_ = s.writeJSON(w, status, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// withLogging wraps a handler to log request start/end and recover panics.
func (s *Server) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("http request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", "panic", rec, "method", r.Method, "path", r.URL.Path)
				s.respondError(w, r, http.StatusInternalServerError, "internal server error", fmt.Errorf("panic: %v", rec))
			}
		}()
		next(w, r)
	}
}
