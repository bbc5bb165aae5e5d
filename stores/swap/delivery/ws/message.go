package ws

import (
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/swap"
)

type msgType string

const (
	// server -> client
	typeHello         msgType = "hello"
	typeAuthenticated msgType = "authenticated"
	typeStatus        msgType = "status"
	typeSignRequest   msgType = "sign_request"
	typeResult        msgType = "result"
	typeError         msgType = "error"

	// client -> server
	typeAuth       msgType = "auth"
	typeExecute    msgType = "execute"
	typeSignResult msgType = "sign_result"
)

// message is the single envelope for both directions, Type decides which fields are set
type message struct {
	Type      msgType `json:"type"`
	SessionId string  `json:"sessionId,omitempty"`
	Challenge string  `json:"challenge,omitempty"`

	Address   domain.Address `json:"address,omitempty"`
	Signature string         `json:"signature,omitempty"`

	Request *swap.BatchRequest `json:"request,omitempty"`

	Id       string          `json:"id,omitempty"`
	Tx       *swap.TxRequest `json:"tx,omitempty"`
	TxHash   domain.TxHash   `json:"txHash,omitempty"`
	Rejected bool            `json:"rejected,omitempty"`

	State  *swap.TokenState  `json:"state,omitempty"`
	Result *swap.BatchResult `json:"result,omitempty"`
	Error  string            `json:"error,omitempty"`
}
