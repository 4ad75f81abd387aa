package ports

// TransactionTracker counts in-flight parts of multi-file upload
// transactions. CompleteOne is linearizable per transaction id: with
// an expected count of N, exactly one of N concurrent completions
// observes true.
type TransactionTracker interface {
	SetExpected(transactionID string, count int)
	CompleteOne(transactionID string) bool
}
