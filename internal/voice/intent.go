// Package voice turns speech transcripts into structured commands and owns
// the capture session around an injected speech-recognition capability.
package voice

import (
	"errors"
	"fmt"
)

// Language is a transcript language tag.
type Language string

const (
	English Language = "en"
	Hindi   Language = "hi"
	Marathi Language = "mr"
)

// Locale maps a language to the locale tag understood by speech providers.
func Locale(lang Language) string {
	switch lang {
	case Hindi:
		return "hi-IN"
	case Marathi:
		return "mr-IN"
	default:
		return "en-US"
	}
}

// Intent kinds.
const (
	KindAddTransaction = "add_transaction"
	KindQueryData      = "query_data"
	KindCheckStock     = "check_stock"
	KindShowAnalytics  = "show_analytics"
)

// Intent is a structured command derived from a transcript. Exactly one of
// the parameter fields matching Kind is set; show_analytics carries none.
type Intent struct {
	Command  string
	Kind     string
	Language Language

	Transaction *TransactionParams
	Query       *QueryParams
	Stock       *StockParams
}

// TransactionParams parameterizes an add_transaction intent.
type TransactionParams struct {
	Type        string // ledger transaction type: income or expense
	Amount      float64
	Description string
}

// QueryParams parameterizes a query_data intent.
type QueryParams struct {
	Period string
	Metric string
}

// StockParams parameterizes a check_stock intent.
type StockParams struct {
	Product string
}

// ErrUnsupported reports that no speech-recognition capability was provided.
var ErrUnsupported = errors.New("voice: speech recognition not supported")

// ErrBusy reports that a capture session is already in flight.
var ErrBusy = errors.New("voice: already listening")

// RecognitionError is a hard failure from the recognition capability.
type RecognitionError struct {
	Code string
	Err  error
}

func (e *RecognitionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("voice: recognition failed (%s): %v", e.Code, e.Err)
	}
	return fmt.Sprintf("voice: recognition failed (%s)", e.Code)
}

func (e *RecognitionError) Unwrap() error { return e.Err }
