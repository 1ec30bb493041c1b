package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"

	"pricewatch/internal/config"
	"pricewatch/internal/domain/entity"
	"pricewatch/pkg/contextx"
	"pricewatch/pkg/logx"
	"pricewatch/pkg/lox"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const subjectNameMaxLen = 25

// EmailNotifier delivers price-change notifications over SMTP, one message
// per recipient.
type EmailNotifier struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailNotifier(cfg config.SMTP) *EmailNotifier {
	return &EmailNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (n *EmailNotifier) SendPriceChange(
	ctx context.Context,
	product entity.Product,
	offer entity.Offer,
	previousPrice entity.Price,
	newPrice entity.Price,
	recipients []string,
) error {
	subject := fmt.Sprintf(
		"Price Watch - %s - Then: %s, Now: %s",
		cropString(product.Name, subjectNameMaxLen),
		priceState(previousPrice),
		priceState(newPrice),
	)

	body, err := renderBody(product, offer, previousPrice, newPrice)
	if err != nil {
		return fmt.Errorf("renderBody: %w", err)
	}

	messages := lox.Map(recipients, func(recipient string) *gomail.Message {
		msg := gomail.NewMessage()
		msg.SetHeader("From", n.from)
		msg.SetHeader("To", recipient)
		msg.SetHeader("Subject", subject)
		msg.SetBody("text/html", body)
		return msg
	})

	var errs []error

	for i, msg := range messages {
		if err := n.dialer.DialAndSend(msg); err != nil {
			logger(ctx).Error(
				"could not send email",
				slog.String("recipient", recipients[i]),
				slog.String("subject", subject),
				logx.Error(err),
			)
			errs = append(errs, err)

			continue
		}

		logger(ctx).Info("email sent", slog.String("subject", subject))
	}

	return errors.Join(errs...)
}

// priceState renders one history row for human eyes: the amount when the
// offer was available, the availability name otherwise.
func priceState(price entity.Price) string {
	if price.Availability == entity.Available && price.Value != nil {
		return fmt.Sprintf("%.2f PLN", *price.Value)
	}

	return price.Availability.String()
}

// cropString shortens s to at most length runes. Cropping by runes keeps
// multi-byte names valid in the subject line.
func cropString(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}

	return string(runes[:length]) + "..."
}

// NopNotifier is used when SMTP is not configured; it only logs.
type NopNotifier struct{}

func (NopNotifier) SendPriceChange(
	ctx context.Context,
	product entity.Product,
	offer entity.Offer,
	_ entity.Price,
	newPrice entity.Price,
	recipients []string,
) error {
	logger(ctx).Info(
		"price change detected, email notifications are disabled",
		slog.String("product", product.Name),
		slog.String(logx.FieldURL, offer.URL),
		slog.String("new_state", priceState(newPrice)),
		slog.Int("recipients", len(recipients)),
	)

	return nil
}
