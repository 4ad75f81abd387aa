package services

import (
	"sync"

	"filetag-api/internal/application/ports"
)

type (
	transaction struct {
		expected  int
		remaining int
	}

	// TransactionService tracks in-flight multi-part upload
	// transactions. All state is process-local: an abandoned
	// transaction simply never closes.
	TransactionService struct {
		mu   sync.Mutex
		txns map[string]*transaction
	}
)

func NewTransactionService() ports.TransactionTracker {
	return &TransactionService{
		txns: make(map[string]*transaction),
	}
}

// SetExpected fixes the remaining count on the first call for an id.
// Later calls only update the expected count, so duplicate start
// signals from retried requests never reset progress already made.
func (ts *TransactionService) SetExpected(transactionID string, count int) {
	if transactionID == "" || count <= 0 {
		return
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	t, ok := ts.txns[transactionID]
	if !ok {
		t = &transaction{}
		ts.txns[transactionID] = t
	}
	if t.expected == 0 {
		t.remaining = count
	}
	t.expected = count
}

// CompleteOne decrements the remaining count and removes the
// transaction when it reaches zero. Exactly one caller observes true;
// a decrement for an unknown or already-closed id is a no-op.
func (ts *TransactionService) CompleteOne(transactionID string) bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	t, ok := ts.txns[transactionID]
	if !ok {
		return false
	}

	t.remaining--
	if t.remaining <= 0 {
		delete(ts.txns, transactionID)
		return true
	}

	return false
}
