package metrics

import "github.com/prometheus/client_golang/prometheus"

//Register adds the metric to the prometheus default registry,
//replacing a previously registered metric with the same name
func Register(m prometheus.Collector) error {
	err := prometheus.Register(m)
	if err != nil {
		prometheus.Unregister(m)
		err = prometheus.Register(m)
	}
	return err
}
