// Package sources resolves domain data through an ordered chain of providers:
// live API, scraped page, then built-in mock data.
package sources

import (
	"context"
	"fmt"

	"rural-assist/internal/models"
)

// OutcomeKind classifies what a provider returned.
type OutcomeKind int

const (
	OutcomeEmpty OutcomeKind = iota
	OutcomeSuccess
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailed:
		return "failed"
	default:
		return "empty"
	}
}

// Outcome is the explicit result of one provider attempt.
type Outcome struct {
	Kind OutcomeKind
	Data interface{}
	Err  error
}

// Success wraps data. Data that carries no record is reported as Empty.
func Success(data interface{}) Outcome {
	if !(models.DataSourceResult{Data: data}).HasData() {
		return Empty()
	}
	return Outcome{Kind: OutcomeSuccess, Data: data}
}

func Empty() Outcome {
	return Outcome{Kind: OutcomeEmpty}
}

func Failed(err error) Outcome {
	return Outcome{Kind: OutcomeFailed, Err: err}
}

// Failedf formats a failure reason.
func Failedf(format string, args ...interface{}) Outcome {
	return Failed(fmt.Errorf(format, args...))
}

// Provider is one tier of the chain. Fetch must not panic; the chain
// recovers if it does.
type Provider interface {
	Name() models.Source
	Fetch(ctx context.Context, q Query) Outcome
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc struct {
	Source models.Source
	Fn     func(ctx context.Context, q Query) Outcome
}

func (p ProviderFunc) Name() models.Source { return p.Source }

func (p ProviderFunc) Fetch(ctx context.Context, q Query) Outcome {
	return p.Fn(ctx, q)
}
