package party

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"

	"puissancen/game"
	"puissancen/grid"
)

// writeWait borne chaque écriture vers un client websocket.
const writeWait = 10 * time.Second

// wsClient pose une échéance avant chaque écriture : un client bloqué ne gèle pas sa partie.
type wsClient struct {
	conn *websocket.Conn
}

func (c wsClient) WriteJSON(v interface{}) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(v)
}

func (c wsClient) Close() error { return c.conn.Close() }

// Message est ce qu'un client envoie sur la websocket.
type Message struct {
	Type string `json:"type"` // "play" ou "reset"
	Col  int    `json:"col"`
}

type errorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// Server expose le registre en HTTP et websocket.
type Server struct {
	reg      *Registry
	log      *log.Entry
	router   *way.Router
	upgrader websocket.Upgrader
}

func NewServer(reg *Registry, logger *log.Entry) *Server {
	s := &Server{
		reg:      reg,
		log:      logger,
		router:   way.NewRouter(),
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("POST", "/api/party", s.handleCreate)
	s.router.HandleFunc("POST", "/api/party/:code/join", s.handleJoin)
	s.router.HandleFunc("GET", "/api/party/:code", s.handleState)
	s.router.HandleFunc("GET", "/ws/:code", s.handleWS)
	s.router.HandleFunc("GET", "/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusOf traduit les erreurs connues en code HTTP.
func statusOf(err error) int {
	switch {
	case errors.Is(err, ErrPartyNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBadPassword):
		return http.StatusForbidden
	case errors.Is(err, grid.ErrInvalidConfiguration),
		errors.Is(err, grid.ErrInvalidPlayer),
		errors.Is(err, grid.ErrOutOfRange),
		errors.Is(err, game.ErrColumnFull):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrGameOver):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		s.log.WithError(err).Error("request failed")
	}
	writeJSON(w, status, errorMessage{Type: "error", Error: err.Error()})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorMessage{Type: "error", Error: "malformed request"})
			return
		}
	}
	p, err := s.reg.Create(req)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"code": p.Code, "id": p.ID.String()})
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	p, err := s.reg.Get(way.Param(r.Context(), "code"))
	if err != nil {
		s.fail(w, err)
		return
	}
	var req struct {
		Password string `json:"password"`
	}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorMessage{Type: "error", Error: "malformed request"})
			return
		}
	}
	if err := p.Authorize(req.Password); err != nil {
		s.fail(w, err)
		return
	}
	p.log.Info("player joined")
	writeJSON(w, http.StatusOK, map[string]string{"status": "joined", "code": p.Code})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	p, err := s.reg.Get(way.Param(r.Context(), "code"))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p.State())
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	p, err := s.reg.Get(way.Param(r.Context(), "code"))
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := p.Authorize(r.URL.Query().Get("password")); err != nil {
		s.fail(w, err)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		p.log.WithError(err).Warn("websocket upgrade")
		return
	}
	client := wsClient{conn: conn}
	if err := p.Attach(client); err != nil {
		p.log.WithError(err).Warn("websocket initial state")
		conn.Close()
		return
	}
	go s.readLoop(p, client)
}

// readLoop lit les coups d'un client jusqu'à la fermeture de la connexion.
func (s *Server) readLoop(p *Party, client wsClient) {
	defer p.Detach(client)
	for {
		var msg Message
		if err := client.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				p.log.WithError(err).Debug("websocket read")
			}
			return
		}
		switch msg.Type {
		case "play":
			if _, err := p.Play(msg.Col); err != nil {
				p.reply(client, errorMessage{Type: "error", Error: err.Error()})
			}
		case "reset":
			p.Reset()
		default:
			p.reply(client, errorMessage{Type: "error", Error: "unknown message type " + msg.Type})
		}
	}
}

// reply écrit à un seul client sous le verrou de la partie.
func (p *Party) reply(c Client, v interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := c.WriteJSON(v); err != nil {
		p.log.WithError(err).Debug("reply")
	}
}
