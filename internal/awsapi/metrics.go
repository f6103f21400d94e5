package awsapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	apiCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hpcfleet_ec2_api_calls_total",
		Help: "EC2 API calls issued by configuration checks, by action.",
	}, []string{"action"})

	throttleRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hpcfleet_ec2_throttle_retries_total",
		Help: "Retries caused by provider throttling, by action.",
	}, []string{"action"})
)
