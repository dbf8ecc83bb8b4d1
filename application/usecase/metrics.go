package usecase

import "github.com/VictoriaMetrics/metrics"

var (
	notificationsReceivedCounter = metrics.NewCounter(`notifications_received_total`)
	interactionsIgnoredCounter   = metrics.NewCounter(`interactions_ignored_total`)
	envelopeDecodeFailCounter    = metrics.NewCounter(`interaction_envelope_decode_failures_total`)
	receiptsAttachedCounter      = metrics.NewCounter(`receipt_metadata_attached_total`)

	messagesPostedCounter = func(channel string) *metrics.Counter {
		return metrics.GetOrCreateCounter(`messages_posted_total{channel="` + channel + `"}`)
	}
	deliveryFailedCounter = func(channel string) *metrics.Counter {
		return metrics.GetOrCreateCounter(`message_deliveries_failed_total{channel="` + channel + `"}`)
	}
	interactionsReceivedCounter = func(control string) *metrics.Counter {
		return metrics.GetOrCreateCounter(`interactions_received_total{control="` + control + `"}`)
	}
	recordPatchCounter = func(status string) *metrics.Counter {
		return metrics.GetOrCreateCounter(`record_patches_total{status="` + status + `"}`)
	}
	messageRewriteCounter = func(status string) *metrics.Counter {
		return metrics.GetOrCreateCounter(`message_rewrites_total{status="` + status + `"}`)
	}
)
