package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/yourorg/canteen-companion/internal/model"
)

// ValidationError is a locally rejected form input. No request is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

var validate = validator.New()

// Topup submits a wallet top-up. The form is validated locally first; a bad
// field never reaches the network.
func (c *Client) Topup(ctx context.Context, req model.TopupRequest) (*model.TopupResult, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, &ValidationError{Field: "amount", Message: "must be positive"}
	}
	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return nil, &ValidationError{
				Field:   fieldErrs[0].Field(),
				Message: "failed " + fieldErrs[0].Tag() + " validation",
			}
		}
		return nil, err
	}

	var result model.TopupResult
	if err := c.post(ctx, "/payments/topup/", req, &result); err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, &ServerError{Status: http.StatusOK, Message: result.Message}
	}
	return &result, nil
}
