package wallet

import (
	"errors"
	"fmt"
)

// ErrorKind classifies wallet failures
type ErrorKind int

const (
	KindGeneric ErrorKind = iota
	KindIO
	KindFormat
	KindArgument
	KindUnsupported
	KindSlateSend
	KindSlateReceive
	KindSlateFinalize
	KindDuplicateTransactionID
	KindTransactionNotFound
	KindTransactionAlreadyReceived
	KindWalletSeedExists
	KindWalletSeedMissing
	KindEncryption
	KindListen
	KindAccount
)

var kindMessages = map[ErrorKind]string{
	KindGeneric:                    "generic error",
	KindIO:                         "IO error",
	KindFormat:                     "JSON format error",
	KindArgument:                   "argument error",
	KindUnsupported:                "operation not supported",
	KindSlateSend:                  "cannot send slate",
	KindSlateReceive:               "cannot receive slate",
	KindSlateFinalize:              "cannot finalize slate",
	KindDuplicateTransactionID:     "duplicate transaction ID",
	KindTransactionNotFound:        "transaction doesn't exist",
	KindTransactionAlreadyReceived: "transaction has already been received",
	KindWalletSeedExists:           "wallet seed exists",
	KindWalletSeedMissing:          "wallet seed doesn't exist",
	KindEncryption:                 "encryption/decryption error (check password?)",
	KindListen:                     "cannot start listening",
	KindAccount:                    "account error",
}

func (k ErrorKind) String() string {
	if msg, ok := kindMessages[k]; ok {
		return msg
	}
	return fmt.Sprintf("unknown error kind %d", int(k))
}

// Error is a wallet failure of a given kind, optionally carrying a detail
// message and the underlying cause
type Error struct {
	Kind   ErrorKind
	Detail string
	Err    error
}

// NewError builds an Error of the given kind wrapping err
func NewError(kind ErrorKind, detail string, err error) *Error {
	return &Error{Kind: kind, Detail: detail, Err: err}
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so callers can test against a
// bare &Error{Kind: ...}
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or KindGeneric
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindGeneric
}

var (
	ErrUnsupported  = &Error{Kind: KindUnsupported}
	ErrSlateSend    = &Error{Kind: KindSlateSend}
	ErrSlateReceive = &Error{Kind: KindSlateReceive}
	ErrFormat       = &Error{Kind: KindFormat}
)
