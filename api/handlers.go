package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/rgtlai/ai-newsletter/extract"
	"github.com/rgtlai/ai-newsletter/feed"
	"github.com/rgtlai/ai-newsletter/pipeline"
	"github.com/rgtlai/ai-newsletter/session"
)

const sessionHeader = "X-Session-ID"

// sessionID returns the caller's session id, minting one when blank.
// The id in use is always echoed back in the X-Session-ID header.
func sessionID(w http.ResponseWriter, id string) string {
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set(sessionHeader, id)
	return id
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "AI Newsletter API is running",
	})
}

func (s *Server) defaults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, feed.DefaultSources)
}

type aggregateRequest struct {
	Sources   []string `json:"sources"`
	SinceDays int      `json:"since_days"`
}

type aggregateResponse struct {
	Articles []feed.Article `json:"articles"`
}

func (s *Server) aggregate(w http.ResponseWriter, r *http.Request) {
	var req aggregateRequest
	if !decode(w, r, &req) {
		return
	}

	articles := s.collectArticles(r, req.Sources, req.SinceDays)
	writeJSON(w, http.StatusOK, aggregateResponse{Articles: articles})
}

// collectArticles aggregates from the explicitly selected sources only.
// No sources means no articles.
func (s *Server) collectArticles(r *http.Request, sources []string, sinceDays int) []feed.Article {
	if len(sources) == 0 {
		return []feed.Article{}
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -clamp(sinceDays, 1, 31, 7))
	articles := s.fetcher.Aggregate(r.Context(), sources, cutoff)
	if articles == nil {
		articles = []feed.Article{}
	}
	return articles
}

type scrapeRequest struct {
	URL string `json:"url"`
}

type scrapeResponse struct {
	ContentText string `json:"content_text"`
}

func (s *Server) scrape(w http.ResponseWriter, r *http.Request) {
	var req scrapeRequest
	if !decode(w, r, &req) {
		return
	}

	text := s.scraper.Excerpt(r.Context(), req.URL, extract.ScrapeLimit)
	writeJSON(w, http.StatusOK, scrapeResponse{ContentText: text})
}

type summariesRequest struct {
	Sources     []string `json:"sources"`
	SinceDays   int      `json:"since_days"`
	MaxArticles int      `json:"max_articles"`
}

type highlightsResponse struct {
	Items []pipeline.HighlightItem `json:"items"`
}

func (s *Server) summaries(w http.ResponseWriter, r *http.Request) {
	var req summariesRequest
	if !decode(w, r, &req) {
		return
	}

	articles := s.collectArticles(r, req.Sources, req.SinceDays)
	max := clamp(req.MaxArticles, 1, pipeline.MaxHighlights, pipeline.DefaultMaxHighlights)
	items := s.pipeline.Highlights(r.Context(), articles, max)
	if items == nil {
		items = []pipeline.HighlightItem{}
	}
	writeJSON(w, http.StatusOK, highlightsResponse{Items: items})
}

type summariesSelectedRequest struct {
	Articles []feed.Article `json:"articles"`
}

func (s *Server) summariesSelected(w http.ResponseWriter, r *http.Request) {
	var req summariesSelectedRequest
	if !decode(w, r, &req) {
		return
	}

	items := s.pipeline.SelectedHighlights(r.Context(), req.Articles)
	if items == nil {
		items = []pipeline.HighlightItem{}
	}
	writeJSON(w, http.StatusOK, highlightsResponse{Items: items})
}

type summarizeRequest struct {
	SessionID    string         `json:"session_id"`
	Articles     []feed.Article `json:"articles"`
	Instructions string         `json:"instructions"`
	PriorHistory []session.Turn `json:"prior_history"`
}

type summarizeResponse struct {
	SummaryMarkdown string `json:"summary_markdown"`
}

func (s *Server) weeklySummary(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if !decode(w, r, &req) {
		return
	}

	id := sessionID(w, req.SessionID)
	summary, err := s.pipeline.WeeklySummary(r.Context(), req.Articles, id, req.Instructions, req.PriorHistory)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summarizeResponse{SummaryMarkdown: summary})
}

type tweetsRequest struct {
	SessionID    string                   `json:"session_id"`
	Summaries    []pipeline.HighlightItem `json:"summaries"`
	PriorHistory []session.Turn           `json:"prior_history"`
}

type tweetsResponse struct {
	Tweets []pipeline.Tweet `json:"tweets"`
}

func (s *Server) tweets(w http.ResponseWriter, r *http.Request) {
	var req tweetsRequest
	if !decode(w, r, &req) {
		return
	}

	id := sessionID(w, req.SessionID)
	tweets := s.pipeline.Tweets(r.Context(), req.Summaries, id, req.PriorHistory)
	if tweets == nil {
		tweets = []pipeline.Tweet{}
	}
	writeJSON(w, http.StatusOK, tweetsResponse{Tweets: tweets})
}

type newsletterRequest struct {
	SessionID       string         `json:"session_id"`
	SummaryMarkdown string         `json:"summary_markdown"`
	Articles        []feed.Article `json:"articles"`
	PriorHistory    []session.Turn `json:"prior_history"`
}

type newsletterResponse struct {
	HTML string `json:"html"`
}

func (s *Server) newsletter(w http.ResponseWriter, r *http.Request) {
	var req newsletterRequest
	if !decode(w, r, &req) {
		return
	}

	id := sessionID(w, req.SessionID)
	html := s.pipeline.Newsletter(req.SummaryMarkdown, req.Articles, id, req.PriorHistory)
	writeJSON(w, http.StatusOK, newsletterResponse{HTML: html})
}

type editRequest struct {
	SessionID    string         `json:"session_id"`
	Text         string         `json:"text"`
	Instruction  string         `json:"instruction"`
	PriorHistory []session.Turn `json:"prior_history"`
}

type editResponse struct {
	EditedText string         `json:"edited_text"`
	History    []session.Turn `json:"history"`
}

func (s *Server) edit(w http.ResponseWriter, r *http.Request) {
	var req editRequest
	if !decode(w, r, &req) {
		return
	}

	id := sessionID(w, req.SessionID)
	edited, history, err := s.pipeline.Edit(r.Context(), req.Text, req.Instruction, id, req.PriorHistory)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, editResponse{EditedText: edited, History: history})
}

type tweetEditRequest struct {
	SessionID           string         `json:"session_id"`
	TweetID             string         `json:"tweet_id"`
	CurrentTweet        string         `json:"current_tweet"`
	OriginalSummary     string         `json:"original_summary"`
	UserMessage         string         `json:"user_message"`
	ConversationHistory []session.Turn `json:"conversation_history"`
}

type tweetEditResponse struct {
	NewTweet            string         `json:"new_tweet"`
	AIResponse          string         `json:"ai_response"`
	ConversationHistory []session.Turn `json:"conversation_history"`
}

func (s *Server) editTweet(w http.ResponseWriter, r *http.Request) {
	var req tweetEditRequest
	if !decode(w, r, &req) {
		return
	}

	id := sessionID(w, req.SessionID)
	res, err := s.pipeline.EditTweet(r.Context(), pipeline.EditTweetInput{
		SessionID:       id,
		TweetID:         req.TweetID,
		CurrentTweet:    req.CurrentTweet,
		OriginalSummary: req.OriginalSummary,
		UserMessage:     req.UserMessage,
		History:         req.ConversationHistory,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tweetEditResponse{
		NewTweet:            res.NewTweet,
		AIResponse:          res.Reply,
		ConversationHistory: res.History,
	})
}

type downloadRequest struct {
	SessionID string `json:"session_id"`
	HTML      string `json:"html"`
}

func (s *Server) downloadHTML(w http.ResponseWriter, r *http.Request) {
	var req downloadRequest
	if !decode(w, r, &req) {
		return
	}

	html := req.HTML
	if html == "" && req.SessionID != "" {
		html = s.pipeline.Store().GetOrCreate(req.SessionID).LastNewsletterHTML
	}
	if html == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"detail": "No HTML provided or found for session",
		})
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename=ai_weekly.html")
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}
