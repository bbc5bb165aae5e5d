package ws

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/atomic"
	"golang.org/x/xerrors"

	"github.com/x-xyz/dustsweep/base/ctx"
	baseeth "github.com/x-xyz/dustsweep/base/ethereum"
	"github.com/x-xyz/dustsweep/base/goroutine"
	"github.com/x-xyz/dustsweep/base/log"
	bValidator "github.com/x-xyz/dustsweep/base/validator"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/swap"
)

const challengePrefix = "Sign in to dustsweep\nsession: "

var ErrSessionClosed = xerrors.New("websocket session closed")

type session struct {
	id        string
	challenge string
	ctx       ctx.Ctx
	conn      *websocket.Conn

	orchestrator swap.Orchestrator
	validate     *validator.Validate

	writeMu sync.Mutex
	mu      sync.Mutex
	owner   domain.Address
	pending map[string]chan message
	running atomic.Bool
	done    chan struct{}
}

var _ swap.Signer = (*session)(nil)

func newSession(c ctx.Ctx, conn *websocket.Conn, orchestrator swap.Orchestrator, validate *validator.Validate) *session {
	id := uuid.NewString()
	return &session{
		id:           id,
		challenge:    challengePrefix + id,
		ctx:          ctx.WithFields(c, log.Fields{"sessionId": id}),
		conn:         conn,
		orchestrator: orchestrator,
		validate:     validate,
		pending:      make(map[string]chan message),
		done:         make(chan struct{}),
	}
}

func (s *session) run() {
	defer s.conn.Close()
	if err := s.send(message{Type: typeHello, SessionId: s.id, Challenge: s.challenge}); err != nil {
		return
	}
	<-goroutine.RecoverableGo(s.readPump, goroutine.WithAfterEnded(func() { close(s.done) }))
}

func (s *session) readPump() {
	for {
		var msg message
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.ctx.WithFields(log.Fields{"err": err}).Warn("websocket read failed")
			}
			return
		}

		switch msg.Type {
		case typeAuth:
			s.auth(msg)
		case typeExecute:
			s.execute(msg)
		case typeSignResult:
			s.resolve(msg)
		default:
			s.sendError("", xerrors.Errorf("unknown message type %q: %w", msg.Type, domain.ErrBadParamInput))
		}
	}
}

func (s *session) send(msg message) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.WriteJSON(msg); err != nil {
		s.ctx.WithFields(log.Fields{"err": err, "type": msg.Type}).Warn("websocket write failed")
		return err
	}
	return nil
}

func (s *session) sendError(id string, err error) {
	_ = s.send(message{Type: typeError, Id: id, Error: err.Error()})
}

// auth binds the session to the wallet that signed the challenge
func (s *session) auth(msg message) {
	if !bValidator.IsValidAddress(string(msg.Address)) {
		s.sendError("", domain.ErrInvalidAddress)
		return
	}
	ok, err := baseeth.ValidateMsgSignature([]byte(s.challenge), msg.Signature, string(msg.Address))
	if err != nil || !ok {
		s.sendError("", baseeth.ErrInvalidSignature)
		return
	}

	s.mu.Lock()
	s.owner = msg.Address.ToLower()
	s.mu.Unlock()
	_ = s.send(message{Type: typeAuthenticated, Address: msg.Address.ToLower()})
}

func (s *session) execute(msg message) {
	owner := s.Address()
	switch {
	case owner.IsEmpty():
		s.sendError("", xerrors.Errorf("session is not authenticated: %w", domain.ErrBadParamInput))
		return
	case msg.Request == nil:
		s.sendError("", xerrors.Errorf("request is required: %w", domain.ErrBadParamInput))
		return
	}
	if err := s.validate.Struct(msg.Request); err != nil {
		s.sendError("", xerrors.Errorf("%v: %w", err, domain.ErrBadParamInput))
		return
	}
	if !s.running.CAS(false, true) {
		s.sendError("", xerrors.Errorf("a batch is already running: %w", domain.ErrBadParamInput))
		return
	}

	req := *msg.Request
	req.Owner = owner
	// signing waits on the user, the batch is not bound to the upgrade request
	c := ctx.Detach(s.ctx)
	goroutine.RecoverableGo(func() {
		defer s.running.Store(false)
		res, err := s.orchestrator.ExecuteBatch(c, req, s, func(st swap.TokenState) {
			_ = s.send(message{Type: typeStatus, State: &st})
		})
		if err != nil {
			s.sendError("", err)
			return
		}
		_ = s.send(message{Type: typeResult, Result: res})
	})
}

func (s *session) resolve(msg message) {
	s.mu.Lock()
	ch, ok := s.pending[msg.Id]
	delete(s.pending, msg.Id)
	s.mu.Unlock()
	if !ok {
		s.sendError(msg.Id, xerrors.Errorf("unknown sign request %q: %w", msg.Id, domain.ErrNotFound))
		return
	}
	ch <- msg
}

func (s *session) Address() domain.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.owner
}

// SendTransaction waits for the wallet without a deadline, only a closed session or c ends the wait
func (s *session) SendTransaction(c ctx.Ctx, tx swap.TxRequest) (domain.TxHash, error) {
	id := uuid.NewString()
	ch := make(chan message, 1)

	s.mu.Lock()
	s.pending[id] = ch
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.pending, id)
		s.mu.Unlock()
	}()

	if err := s.send(message{Type: typeSignRequest, Id: id, Tx: &tx}); err != nil {
		return "", xerrors.Errorf("%v: %w", err, ErrSessionClosed)
	}

	select {
	case res := <-ch:
		switch {
		case res.Rejected:
			return "", domain.ErrUserRejected
		case res.Error != "":
			return "", xerrors.New(res.Error)
		case res.TxHash == "":
			return "", xerrors.Errorf("empty tx hash: %w", domain.ErrBadParamInput)
		}
		return res.TxHash.ToLower(), nil
	case <-s.done:
		return "", ErrSessionClosed
	case <-c.Done():
		return "", c.Err()
	}
}
