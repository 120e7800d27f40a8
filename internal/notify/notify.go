// Package notify sends best-effort analysis notifications to the webhook.
package notify

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"jobrec/internal/apperr"
	"jobrec/internal/webhook"
)

// Notification is the payload the automation workflow uses to search jobs.
type Notification struct {
	Email       string   `json:"email"`
	Skills      []string `json:"skills"`
	Experience  string   `json:"experience"`
	RapidAPIKey string   `json:"rapidapi_key,omitempty"`
}

// Poster delivers a JSON payload. *webhook.Client satisfies it.
type Poster interface {
	Post(ctx context.Context, payload any) (*webhook.Response, error)
}

// Dispatcher delivers notifications at most once. Dispatch never reports
// failure to its caller; the outcome is only logged and counted.
type Dispatcher struct {
	poster  Poster
	logger  *zap.Logger
	timeout time.Duration
	total   *prometheus.CounterVec
}

// NewDispatcher registers the notification counter on reg.
func NewDispatcher(poster Poster, log *zap.Logger, reg prometheus.Registerer, timeout time.Duration) (*Dispatcher, error) {
	d := &Dispatcher{
		poster:  poster,
		logger:  log,
		timeout: timeout,
		total: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resume_notifications_total",
				Help: "Analysis notifications sent to the automation webhook, by outcome.",
			},
			[]string{"outcome"},
		),
	}
	if err := reg.Register(d.total); err != nil {
		return nil, err
	}
	return d, nil
}

// Dispatch posts n synchronously. It is detached from the caller's
// cancellation so a client hanging up does not abort delivery.
func (d *Dispatcher) Dispatch(ctx context.Context, n Notification) {
	ctx = context.WithoutCancel(ctx)
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	start := time.Now()
	_, err := d.poster.Post(ctx, n)
	if err != nil {
		d.total.WithLabelValues("failed").Inc()
		d.logger.Warn("notification failed",
			zap.String("kind", string(apperr.KindNotificationFailed)),
			zap.Int("skills", len(n.Skills)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return
	}

	d.total.WithLabelValues("sent").Inc()
	d.logger.Info("notification sent",
		zap.Int("skills", len(n.Skills)),
		zap.Duration("elapsed", time.Since(start)),
	)
}
