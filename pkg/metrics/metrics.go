// Package metrics keeps counters about ledger activity.
//
// There is no listener. The counters are written to a file for the
// node exporter textfile collector after each command.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcomes of an imported row.
const (
	OutcomeParsed  = "parsed"
	OutcomeSkipped = "skipped"
	OutcomeInvalid = "invalid"
)

// Registry holds all ledger metrics.
var Registry = prometheus.NewRegistry()

var collectors = []prometheus.Collector{
	TransactionsRecorded,
	ImportRows,
	Allocations,
	AllocatedAmount,
}

var TransactionsRecorded = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ledger_transactions_recorded_total",
		Help: "How many transactions were written, partitioned by kind.",
	},
	[]string{"kind"},
)

var ImportRows = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ledger_import_rows_total",
		Help: "How many statement rows were read, partitioned by outcome.",
	},
	[]string{"outcome"},
)

var Allocations = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "ledger_allocations_total",
		Help: "How many savings allocations were recorded.",
	},
)

var AllocatedAmount = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "ledger_allocated_amount_total",
		Help: "The sum of all amounts allocated to savings goals.",
	},
)

// Register registers all metrics with the Registry.
func Register() error {
	for _, c := range collectors {
		if err := Registry.Register(c); err != nil {
			return fmt.Errorf("could not register %s with Prometheus: %w", c, err)
		}
	}

	return nil
}

// Unregister removes all metrics from the Registry.
func Unregister() bool {
	for _, c := range collectors {
		if ok := Registry.Unregister(c); !ok {
			return false
		}
	}

	return true
}

// WriteTextfile writes the current values in the text exposition format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
