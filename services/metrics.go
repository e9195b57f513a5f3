package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chatResponsesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "healthbot",
		Subsystem: "chat",
		Name:      "responses_total",
		Help:      "Chat responses by response type and channel",
	}, []string{"type", "channel"})

	historyErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "healthbot",
		Subsystem: "history",
		Name:      "errors_total",
		Help:      "Failed attempts to store chat history",
	})

	whatsappSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "healthbot",
		Subsystem: "whatsapp",
		Name:      "messages_sent_total",
		Help:      "Outbound WhatsApp messages by result",
	}, []string{"result"})
)
