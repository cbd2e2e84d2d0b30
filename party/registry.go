package party

import (
	"fmt"
	mrand "math/rand"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"puissancen/game"
)

const (
	codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength  = 6
)

// CreateRequest : champs à zéro = valeurs par défaut du registre.
type CreateRequest struct {
	Width     int    `json:"width"`
	WinLength int    `json:"winLength"`
	Password  string `json:"password"`
}

// Registry garde les parties en mémoire, indexées par code.
type Registry struct {
	defaults game.Options
	log      *log.Entry

	mu      sync.Mutex
	parties map[string]*Party
}

func NewRegistry(defaults game.Options, logger *log.Entry) *Registry {
	return &Registry{
		defaults: defaults,
		log:      logger,
		parties:  make(map[string]*Party),
	}
}

func generateCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeCharset[mrand.Intn(len(codeCharset))]
	}
	return string(b)
}

// Create ouvre une nouvelle partie avec un code inédit.
func (r *Registry) Create(req CreateRequest) (*Party, error) {
	opts := r.defaults
	if req.Width != 0 {
		opts.Width = req.Width
		if req.WinLength == 0 && opts.WinLength > opts.Width {
			opts.WinLength = opts.Width
		}
	}
	if req.WinLength != 0 {
		opts.WinLength = req.WinLength
	}
	m, err := game.NewMatch(opts)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	code := generateCode()
	for r.parties[code] != nil {
		code = generateCode()
	}
	p, err := newParty(code, m, req.Password, r.log)
	if err != nil {
		return nil, err
	}
	r.parties[code] = p
	p.log.WithFields(log.Fields{"width": opts.Width, "winLength": opts.WinLength, "private": p.Private()}).Info("party created")
	return p, nil
}

// Get retrouve une partie ; le code est insensible à la casse.
func (r *Registry) Get(code string) (*Party, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.parties[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPartyNotFound, code)
	}
	return p, nil
}

// Len retourne le nombre de parties ouvertes.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.parties)
}

// Sweep supprime les parties plus vieilles que maxAge et sans client.
// Une partie occupée (coup en cours d'envoi) est laissée pour le passage suivant.
func (r *Registry) Sweep(maxAge time.Duration) int {
	limit := time.Now().Add(-maxAge)
	var old []*Party
	r.mu.Lock()
	for _, p := range r.parties {
		if p.CreatedAt.Before(limit) {
			old = append(old, p)
		}
	}
	r.mu.Unlock()

	var idle []*Party
	for _, p := range old {
		if p.idle() {
			idle = append(idle, p)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range idle {
		if r.parties[p.Code] == p {
			delete(r.parties, p.Code)
			n++
		}
	}
	if n > 0 {
		r.log.WithField("removed", n).Info("idle parties swept")
	}
	return n
}
