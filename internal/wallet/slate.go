package wallet

import (
	"github.com/google/uuid"
)

// ParticipantData is one party's public contribution to a slate
type ParticipantData struct {
	ID                uint64  `json:"id"`
	PublicBlindExcess string  `json:"public_blind_excess"`
	PublicNonce       string  `json:"public_nonce"`
	PartSig           *string `json:"part_sig"`
	Message           *string `json:"message"`
	MessageSig        *string `json:"message_sig"`
}

// Slate is the transaction payload passed between wallets while a
// transaction is being built. Only the fields the adapters inspect are typed.
type Slate struct {
	ID              uuid.UUID         `json:"id"`
	Version         uint16            `json:"version"`
	NumParticipants int               `json:"num_participants"`
	Amount          uint64            `json:"amount"`
	Fee             uint64            `json:"fee"`
	Height          uint64            `json:"height"`
	LockHeight      uint64            `json:"lock_height"`
	Participants    []ParticipantData `json:"participant_data"`
}

// NewSlate starts an empty slate with a fresh ID
func NewSlate(numParticipants int, amount, fee, height uint64) *Slate {
	return &Slate{
		ID:              uuid.New(),
		Version:         2,
		NumParticipants: numParticipants,
		Amount:          amount,
		Fee:             fee,
		Height:          height,
	}
}

// Adapter moves slates between wallets
type Adapter interface {
	SupportsSync() bool
	SendTxSync(dest string, slate *Slate) (*Slate, error)
	SendTxAsync(dest string, slate *Slate) error
	ReceiveTxAsync(params string) (*Slate, error)
	Listen(params map[string]string) error
}
