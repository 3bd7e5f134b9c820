package mockestimator

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/manugarri/bb-league/model"
)

type Estimator struct {
	mock.Mock
}

func (e *Estimator) EstimateMultiplier(ctx context.Context, prompt string) (*model.MultiplierEstimate, error) {
	args := e.Called(ctx, prompt)

	var est *model.MultiplierEstimate
	if args.Get(0) != nil {
		est = args.Get(0).(*model.MultiplierEstimate)
	}
	return est, args.Error(1)
}
