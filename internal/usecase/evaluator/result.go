package evaluator

import "dev-match/internal/domain/matching"

// Result is either a Question or a Sufficient verdict.
type Result interface {
	isResult()
}

// Question asks the client for more information.
type Question struct {
	Text string
}

// Sufficient carries the normalized requirements to score against.
type Sufficient struct {
	Requirements matching.Requirements
}

func (Question) isResult()   {}
func (Sufficient) isResult() {}
