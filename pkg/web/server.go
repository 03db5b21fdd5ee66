package web

import (
	"context"
	"html/template"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/Ciwooooo/ai-chat-app/pkg/llm"
)

type Config struct {
	ListenAddr string
	AppName    string
	LLMBaseURL string
	LLMModel   string
}

// Completer is the one thing the web app needs from the model server.
type Completer interface {
	ChatCompletion(ctx context.Context, messages []llm.Message) (string, error)
}

// Server holds per-session conversation history in memory. History does
// not survive a restart; the chat is a demo surface, not a store.
type Server struct {
	config    Config
	completer Completer
	tmpl      *template.Template

	mu       sync.Mutex
	sessions map[string][]llm.Message
}

func NewServer(config Config, completer Completer) *Server {
	return &Server{
		config:    config,
		completer: completer,
		tmpl:      template.Must(template.New("chat").Parse(chatTemplate)),
		sessions:  map[string][]llm.Message{},
	}
}

func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleIndex).Methods("GET")
	r.HandleFunc("/chat", s.handleChat).Methods("POST")
	r.HandleFunc("/clear", s.handleClear).Methods("POST")
	r.HandleFunc("/api/chat", s.handleAPIChat).Methods("POST")
	r.HandleFunc("/health", s.handleHealth).Methods("GET")
	return r
}

func (s *Server) history(sessionID string) []llm.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.sessions[sessionID]
	out := make([]llm.Message, len(history))
	copy(out, history)
	return out
}

func (s *Server) appendHistory(sessionID string, messages ...llm.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sessionID] = append(s.sessions[sessionID], messages...)
}

func (s *Server) clearHistory(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
}
