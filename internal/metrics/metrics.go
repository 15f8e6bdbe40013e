// Package metrics exposes Prometheus counters for the command/event bus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CommandsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "janet_commands_total",
		Help: "Total number of commands accepted by the system",
	})
	CommandsFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "janet_commands_failed_total",
		Help: "Total number of commands whose handler returned an error",
	})
	EventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "janet_events_total",
		Help: "Total number of events accepted by the system",
	})
	EventsFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "janet_events_failed_total",
		Help: "Total number of events whose handler returned an error",
	})
	NotesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "janet_notes_total",
		Help: "Total number of notes posted to merge request discussions",
	})
	RemindersClosedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "janet_reminders_closed_total",
		Help: "Total number of reminders delivered and removed",
	})
	WebhooksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "janet_webhooks_total",
		Help: "Total number of webhook requests received",
	})
)
