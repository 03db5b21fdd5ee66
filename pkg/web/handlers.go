package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/Ciwooooo/ai-chat-app/pkg/llm"
)

const sessionCookie = "aichat_session"

type pageData struct {
	Title    string
	Messages []llm.Message
}

type chatAPIRequest struct {
	Message string `json:"message"`
}

type chatAPIResponse struct {
	Response string        `json:"response"`
	History  []llm.Message `json:"history"`
}

func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
	return id
}

func (s *Server) renderPage(w http.ResponseWriter, sessionID string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := s.tmpl.Execute(w, pageData{
		Title:    s.config.AppName,
		Messages: s.history(sessionID),
	})
	if err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, s.sessionID(w, r))
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	sessionID := s.sessionID(w, r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	message := r.PostFormValue("message")
	if message == "" {
		s.renderPage(w, sessionID)
		return
	}

	s.appendHistory(sessionID, llm.Message{Role: "user", Content: message})

	response, err := s.completer.ChatCompletion(r.Context(), s.history(sessionID))
	if err != nil {
		// surface the failure in the conversation instead of a bare 502,
		// matching how the page is used interactively
		response = fmt.Sprintf("Sorry, I encountered an error: %v", err)
	}
	s.appendHistory(sessionID, llm.Message{Role: "assistant", Content: response})

	s.renderPage(w, sessionID)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	sessionID := s.sessionID(w, r)
	s.clearHistory(sessionID)
	s.renderPage(w, sessionID)
}

func (s *Server) handleAPIChat(w http.ResponseWriter, r *http.Request) {
	sessionID := s.sessionID(w, r)

	var req chatAPIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.appendHistory(sessionID, llm.Message{Role: "user", Content: req.Message})

	response, err := s.completer.ChatCompletion(r.Context(), s.history(sessionID))
	if err != nil {
		http.Error(w, fmt.Sprintf("chat completion failed: %v", err), http.StatusBadGateway)
		return
	}
	s.appendHistory(sessionID, llm.Message{Role: "assistant", Content: response})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(chatAPIResponse{
		Response: response,
		History:  s.history(sessionID),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}
