package ml

import "context"

// StubModelClient implements port.ModelClient with a neutral constant
// prediction. It keeps the hybrid scoring path exercisable before a
// trained classifier is deployed behind the same interface.
type StubModelClient struct {
	prediction float64
}

// NewStubModelClient creates a stub returning a neutral 0.5.
func NewStubModelClient() *StubModelClient {
	return &StubModelClient{prediction: 0.5}
}

// Predict returns the configured constant.
func (c *StubModelClient) Predict(_ context.Context, _ map[string]float64) (float64, error) {
	return c.prediction, nil
}
