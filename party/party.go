package party

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"puissancen/game"
)

var (
	ErrPartyNotFound = errors.New("party not found")
	ErrBadPassword   = errors.New("bad party password")
)

// Client reçoit les états de la partie ; *websocket.Conn convient.
type Client interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Party est une partie identifiée par un code à partager.
type Party struct {
	ID        uuid.UUID
	Code      string
	CreatedAt time.Time

	passwordHash []byte
	log          *log.Entry

	mu      sync.Mutex
	match   *game.Match
	clients map[Client]bool
}

func newParty(code string, m *game.Match, password string, logger *log.Entry) (*Party, error) {
	p := &Party{
		ID:        uuid.New(),
		Code:      code,
		CreatedAt: time.Now(),
		match:     m,
		clients:   make(map[Client]bool),
	}
	if password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash party password: %w", err)
		}
		p.passwordHash = h
	}
	p.log = logger.WithFields(log.Fields{"party": code, "id": p.ID.String()})
	return p, nil
}

// Private indique qu'un mot de passe est demandé pour rejoindre.
func (p *Party) Private() bool { return len(p.passwordHash) > 0 }

// Authorize vérifie le mot de passe d'une partie privée.
func (p *Party) Authorize(password string) error {
	if !p.Private() {
		return nil
	}
	if err := bcrypt.CompareHashAndPassword(p.passwordHash, []byte(password)); err != nil {
		return ErrBadPassword
	}
	return nil
}

// State retourne l'état courant.
func (p *Party) State() game.GameState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.match.State()
}

// Play joue dans col pour le joueur courant puis diffuse l'état à tous les clients.
func (p *Party) Play(col int) (game.GameState, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	player := p.match.Next()
	row, err := p.match.Play(col)
	if err != nil {
		p.log.WithError(err).WithField("col", col).Debug("move rejected")
		return p.match.State(), err
	}
	st := p.match.State()
	entry := p.log.WithFields(log.Fields{"player": player, "col": col, "row": row, "version": st.Version})
	switch {
	case st.Winner != "":
		entry.Info("winning move")
	case st.Draw:
		entry.Info("board full, draw")
	default:
		entry.Debug("move")
	}
	p.broadcast(st)
	return st, nil
}

// Reset recommence la partie et diffuse le plateau vide.
func (p *Party) Reset() game.GameState {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.match.Reset()
	st := p.match.State()
	p.log.Info("party reset")
	p.broadcast(st)
	return st
}

// Attach enregistre un client et lui envoie l'état courant.
func (p *Party) Attach(c Client) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := c.WriteJSON(p.match.State()); err != nil {
		return err
	}
	p.clients[c] = true
	p.log.WithField("clients", len(p.clients)).Debug("client attached")
	return nil
}

func (p *Party) Detach(c Client) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.clients[c] {
		delete(p.clients, c)
		c.Close()
	}
}

func (p *Party) Clients() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.clients)
}

// idle indique que la partie n'a aucun client, sans attendre un coup en cours.
func (p *Party) idle() bool {
	if !p.mu.TryLock() {
		return false
	}
	defer p.mu.Unlock()
	return len(p.clients) == 0
}

// broadcast suppose p.mu verrouillé.
func (p *Party) broadcast(st game.GameState) {
	for c := range p.clients {
		if err := c.WriteJSON(st); err != nil {
			p.log.WithError(err).Warn("dropping client")
			delete(p.clients, c)
			c.Close()
		}
	}
}
