package commands

import (
	"errors"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/services"
	"github.com/mschaaf17/ShippityApp/internal/pkg/guard"
)

var ErrSubmitOrdersCommandIsNotConstructed = errors.New(
	"SubmitOrdersCommand must be created via NewSubmitOrdersCommand constructor",
)

// SubmitOrdersCommand represents a partner request to ship a set of
// vehicles. One submission may produce several carrier orders.
type SubmitOrdersCommand struct { //nolint:recvcheck //using for validation
	submission services.Submission

	guard guard.ConstructorGuard
}

// NewSubmitOrdersCommand creates a submission command. Structural
// validation (vehicles present, both addresses present) happens here, so a
// malformed submission never reaches the carrier.
func NewSubmitOrdersCommand(submission services.Submission) (SubmitOrdersCommand, error) {
	if err := services.NewOrderBuilder().Validate(submission); err != nil {
		return SubmitOrdersCommand{}, err
	}

	return SubmitOrdersCommand{
		submission: submission,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitOrdersCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrdersCommandIsNotConstructed)
}

// Submission returns the partner submission.
func (c SubmitOrdersCommand) Submission() services.Submission {
	return c.submission
}
