package wallet

import (
	"github.com/stretchr/testify/mock"
)

type MockAdapter struct {
	mock.Mock
}

func (m *MockAdapter) SupportsSync() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockAdapter) SendTxSync(dest string, slate *Slate) (*Slate, error) {
	args := m.Called(dest, slate)
	if s := args.Get(0); s != nil {
		return s.(*Slate), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAdapter) SendTxAsync(dest string, slate *Slate) error {
	args := m.Called(dest, slate)
	return args.Error(0)
}

func (m *MockAdapter) ReceiveTxAsync(params string) (*Slate, error) {
	args := m.Called(params)
	if s := args.Get(0); s != nil {
		return s.(*Slate), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAdapter) Listen(params map[string]string) error {
	args := m.Called(params)
	return args.Error(0)
}
