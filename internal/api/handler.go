// Package api exposes the dashboard over HTTP: a server-rendered shell,
// HTMX partials for the seven views, and a JSON API mirroring each widget.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"sentiment-dashboard/config"
	"sentiment-dashboard/internal/app"
	"sentiment-dashboard/internal/session"
	"sentiment-dashboard/services"

	"github.com/go-chi/chi/v5"
)

const sessionCookieName = "dashboard_session"

const minAnalyzeTextRunes = 3

var symbolPattern = regexp.MustCompile(`^[A-Z0-9.-]+$`)

// Handler handles HTTP requests for the dashboard.
type Handler struct {
	app *app.App
	cfg *config.Config
}

// NewHandler creates a Handler.
func NewHandler(a *app.App, cfg *config.Config) *Handler {
	return &Handler{app: a, cfg: cfg}
}

// session resolves the request's session from its cookie, creating one and
// setting the cookie when absent.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) *session.State {
	var id string
	if c, err := r.Cookie(sessionCookieName); err == nil {
		id = c.Value
	}
	sess := h.app.Sessions().GetOrCreate(id)
	if sess.ID() != id {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    sess.ID(),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess
}

// handleIndex serves the dashboard shell.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	renderTemplate(w, "index", map[string]any{
		"Views":      NewViewList(sess.ActiveView()),
		"Disclaimer": app.Disclaimer,
	})
}

// handleHealth returns the current upstream health, probing when stale.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)

	status, reachable := h.app.Gate().Current()
	if h.app.Gate().Stale() {
		status, reachable = h.app.CheckHealth(r.Context(), sess)
	}

	if isHTMXRequest(r) {
		renderTemplate(w, "health_status", map[string]any{
			"Reachable": reachable,
			"Health":    status,
		})
		return
	}
	h.jsonResponse(w, map[string]any{
		"reachable": reachable,
		"health":    status,
	})
}

// handleHealthRefresh is the manual recheck. It always goes to the network
// and is the only way out of a blocked gate.
func (h *Handler) handleHealthRefresh(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	status, reachable := h.app.CheckHealth(r.Context(), sess)

	if isHTMXRequest(r) {
		renderTemplate(w, "health_status", map[string]any{
			"Reachable": reachable,
			"Health":    status,
		})
		return
	}
	h.jsonResponse(w, map[string]any{
		"reachable": reachable,
		"health":    status,
	})
}

// handleGetViews lists the dashboard views with the session's active one
// marked.
func (h *Handler) handleGetViews(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	h.jsonResponse(w, NewViewList(sess.ActiveView()))
}

// handleSelectView switches the session's active view.
func (h *Handler) handleSelectView(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)

	name := r.FormValue("view")
	v, err := session.ParseView(name)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	sess.SetActiveView(v)

	h.jsonResponse(w, map[string]string{"view": v.Slug()})
}

// handleSetBaseURL sets or clears the session's API base URL override.
func (h *Handler) handleSetBaseURL(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)

	raw := strings.TrimSpace(r.FormValue("base_url"))
	if raw != "" {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			h.jsonError(w, "base URL must be a valid http(s) URL", http.StatusBadRequest)
			return
		}
	}
	sess.SetBaseURL(raw)

	base := raw
	if base == "" {
		base = h.cfg.API.BaseURL
	}
	h.jsonResponse(w, map[string]string{"base_url": base})
}

// handlePredict runs a prediction for one symbol.
func (h *Handler) handlePredict(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)

	symbol, err := h.symbolParam(r)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	includeSentiment := parseBoolParam(r, "include_sentiment", true)

	result, err := h.app.Predict(r.Context(), sess, symbol, includeSentiment)
	h.renderWidget(w, r, err, func() (any, string) {
		return NewPredictionView(result), "prediction_card"
	})
}

// handleCompare predicts a list of symbols and returns them ranked.
func (h *Handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)

	raw := r.FormValue("symbols")
	if raw == "" {
		raw = r.URL.Query().Get("symbols")
	}
	symbols, err := parseSymbolList(raw)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	includeSentiment := parseBoolParam(r, "include_sentiment", true)

	entries, err := h.app.Compare(r.Context(), sess, symbols, includeSentiment)
	h.renderWidget(w, r, err, func() (any, string) {
		return NewComparativeRows(entries), "comparative_table"
	})
}

// handleStockInfo returns the company profile widget.
func (h *Handler) handleStockInfo(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)

	symbol, err := h.symbolParam(r)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	info, err := h.app.StockInfo(r.Context(), sess, symbol)
	h.renderWidget(w, r, err, func() (any, string) {
		return NewStockInfoView(info), ""
	})
}

// handleIndicators returns the technical indicators widget.
func (h *Handler) handleIndicators(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)

	symbol, err := h.symbolParam(r)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ind, err := h.app.Indicators(r.Context(), sess, symbol)
	h.renderWidget(w, r, err, func() (any, string) {
		return NewIndicatorsView(ind), ""
	})
}

// handleHistory returns the Charts view data. Period and interval default
// to the session's previous inputs.
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)

	symbol, err := h.symbolParam(r)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	prev := sess.Chart()
	period := r.URL.Query().Get("period")
	if period == "" {
		period = prev.Period
	}
	interval := r.URL.Query().Get("interval")
	if interval == "" {
		interval = prev.Interval
	}

	series, err := h.app.History(r.Context(), sess, symbol, period, interval)
	h.renderWidget(w, r, err, func() (any, string) {
		return NewHistoryView(series, sess.Chart()), ""
	})
}

// handleRedditSentiment returns the basic single-subreddit sentiment.
func (h *Handler) handleRedditSentiment(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)

	symbol, err := h.symbolParam(r)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	limit := h.parseLimitParam(r, 25)

	payload, err := h.app.RedditSentiment(r.Context(), sess, symbol, limit)
	h.renderWidget(w, r, err, func() (any, string) {
		return NewSentimentView(payload), ""
	})
}

// handleComprehensiveSentiment returns the multi-subreddit sentiment.
func (h *Handler) handleComprehensiveSentiment(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)

	symbol, err := h.symbolParam(r)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	limit := h.parseLimitParam(r, 25)

	var subreddits []string
	if raw := r.URL.Query().Get("subreddits"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				subreddits = append(subreddits, s)
			}
		}
	}

	payload, err := h.app.ComprehensiveSentiment(r.Context(), sess, symbol, subreddits, limit)
	h.renderWidget(w, r, err, func() (any, string) {
		return NewSentimentView(payload), ""
	})
}

// handleRedditPosts returns recent posts mentioning a symbol.
func (h *Handler) handleRedditPosts(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)

	symbol, err := h.symbolParam(r)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	limit := h.parseLimitParam(r, 10)

	posts, err := h.app.RedditPosts(r.Context(), sess, symbol, limit)
	h.renderWidget(w, r, err, func() (any, string) {
		return posts, ""
	})
}

// handleSubreddits lists the communities available for analysis.
func (h *Handler) handleSubreddits(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)

	subs, err := h.app.AvailableSubreddits(r.Context(), sess)
	h.renderWidget(w, r, err, func() (any, string) {
		return subs, ""
	})
}

// handleAnalyzeText runs the sentiment pipeline on free-form text.
func (h *Handler) handleAnalyzeText(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		req.Text = r.FormValue("text")
	}

	text := strings.TrimSpace(req.Text)
	if utf8.RuneCountInString(text) < minAnalyzeTextRunes {
		h.jsonError(w, fmt.Sprintf("text must be at least %d characters", minAnalyzeTextRunes), http.StatusBadRequest)
		return
	}

	result, err := h.app.AnalyzeText(r.Context(), sess, text)
	h.renderWidget(w, r, err, func() (any, string) {
		return result, ""
	})
}

// handleModelInfo returns the upstream model's description.
func (h *Handler) handleModelInfo(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)

	info, err := h.app.ModelInfo(r.Context(), sess)
	h.renderWidget(w, r, err, func() (any, string) {
		return info, ""
	})
}

// handleSystemInfo returns the System Info view aggregate.
func (h *Handler) handleSystemInfo(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	h.jsonResponse(w, h.app.SystemInfoFor(r.Context(), sess))
}

// renderWidget maps an operation outcome to the widget envelope. A nil
// error emits the view (as an HTMX partial when the build names one). A
// blocked gate is 503; any other upstream failure degrades to 200 with
// available=false so sibling widgets keep rendering.
func (h *Handler) renderWidget(w http.ResponseWriter, r *http.Request, err error, build func() (any, string)) {
	switch {
	case err == nil:
		data, partial := build()
		if partial != "" && isHTMXRequest(r) {
			renderTemplate(w, partial, data)
			return
		}
		h.jsonResponse(w, widgetResponse{Available: true, Data: data})
	case errors.Is(err, app.ErrUpstreamBlocked):
		if isHTMXRequest(r) {
			w.WriteHeader(http.StatusServiceUnavailable)
			renderTemplate(w, "widget_error", err.Error())
			return
		}
		h.jsonError(w, err.Error(), http.StatusServiceUnavailable)
	default:
		if isHTMXRequest(r) {
			renderTemplate(w, "widget_error", "")
			return
		}
		h.jsonResponse(w, widgetResponse{Available: false, Message: "data unavailable"})
	}
}

// Helper functions

// symbolParam validates the symbol from the URL path or query before any
// network call is made.
func (h *Handler) symbolParam(r *http.Request) (string, error) {
	symbol := chi.URLParam(r, "symbol")
	if symbol == "" {
		symbol = r.URL.Query().Get("symbol")
	}
	symbol = services.NormalizeSymbol(symbol)
	return symbol, validateSymbol(symbol)
}

func validateSymbol(symbol string) error {
	if symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	if len(symbol) > 10 {
		return fmt.Errorf("symbol too long (max 10 characters)")
	}
	if !symbolPattern.MatchString(symbol) {
		return fmt.Errorf("invalid symbol format (alphanumeric, dots, and dashes only)")
	}
	return nil
}

func parseSymbolList(raw string) ([]string, error) {
	var symbols []string
	for _, s := range strings.Split(raw, ",") {
		s = services.NormalizeSymbol(s)
		if s == "" {
			continue
		}
		if err := validateSymbol(s); err != nil {
			return nil, err
		}
		symbols = append(symbols, s)
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("at least one symbol is required")
	}
	return symbols, nil
}

func (h *Handler) parseLimitParam(r *http.Request, defaultLimit int) int {
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			return l
		}
	}
	return defaultLimit
}

func parseBoolParam(r *http.Request, name string, defaultValue bool) bool {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		raw = r.FormValue(name)
	}
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return defaultValue
	}
	return v
}

func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

func (h *Handler) jsonResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
