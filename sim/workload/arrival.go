package workload

import (
	"github.com/sirupsen/logrus"
)

// SecondsPerHour converts hourly rates into simulated seconds.
const SecondsPerHour = 3600.0

// minOrdersPerHour floors the arrival rate to keep the mean inter-arrival
// time finite.
const minOrdersPerHour = 1e-9

// NewArrivalSampler creates the inter-arrival sampler for a Poisson order
// stream: exponential gaps with mean 3600/ordersPerHour seconds.
func NewArrivalSampler(ordersPerHour float64) *ExponentialSampler {
	if ordersPerHour < minOrdersPerHour {
		logrus.Warnf("orders per hour %.6f is not positive; flooring to %g", ordersPerHour, minOrdersPerHour)
		ordersPerHour = minOrdersPerHour
	}
	return NewExponentialSampler(SecondsPerHour / ordersPerHour)
}
