package quotes

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/dfameublement/catalogue-backend/pkg/db/models"
	"github.com/dfameublement/catalogue-backend/pkg/logger"
)

// Notifier announces a persisted quote request to the sales team. Delivery
// is best effort: the submission already succeeded by the time it runs.
type Notifier interface {
	QuoteSubmitted(ctx context.Context, quote *models.QuoteRequest) error
}

// NopNotifier drops notifications. Used when no recipient is configured.
type NopNotifier struct{}

func (NopNotifier) QuoteSubmitted(ctx context.Context, quote *models.QuoteRequest) error {
	return nil
}

// SendgridNotifier emails a French summary of each quote request.
type SendgridNotifier struct {
	apiKey string
	from   string
	to     string
	logg   *logger.Logger
}

// NewSendgridNotifier builds the sendgrid-backed notifier.
func NewSendgridNotifier(apiKey, from, to string, logg *logger.Logger) (*SendgridNotifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("sendgrid api key required")
	}
	if from == "" || to == "" {
		return nil, fmt.Errorf("sender and recipient addresses required")
	}
	return &SendgridNotifier{apiKey: apiKey, from: from, to: to, logg: logg}, nil
}

func (n *SendgridNotifier) QuoteSubmitted(ctx context.Context, quote *models.QuoteRequest) error {
	subject := fmt.Sprintf("Nouvelle demande de devis de %s", quote.CustomerName)
	htmlBody := renderQuoteEmail(quote)

	message := mail.NewSingleEmail(
		mail.NewEmail("DF Ameublement", n.from),
		subject,
		mail.NewEmail("", n.to),
		plainTextQuote(quote),
		htmlBody,
	)

	client := sendgrid.NewSendClient(n.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d body=%s", response.StatusCode, response.Body)
	}

	if n.logg != nil {
		ctx = n.logg.WithQuoteID(ctx, quote.ID.String())
		ctx = n.logg.WithField(ctx, "status", response.StatusCode)
		n.logg.Info(ctx, "quote notification sent")
	}
	return nil
}

func renderQuoteEmail(quote *models.QuoteRequest) string {
	var b strings.Builder
	b.WriteString("<h2>Nouvelle demande de devis</h2>")
	b.WriteString("<p><strong>Nom :</strong> " + html.EscapeString(quote.CustomerName) + "<br>")
	b.WriteString("<strong>Email :</strong> " + html.EscapeString(quote.CustomerEmail))
	if quote.CustomerPhone != nil && *quote.CustomerPhone != "" {
		b.WriteString("<br><strong>Téléphone :</strong> " + html.EscapeString(*quote.CustomerPhone))
	}
	b.WriteString("</p>")
	if quote.Message != nil && *quote.Message != "" {
		b.WriteString("<p><strong>Message :</strong><br>" + html.EscapeString(*quote.Message) + "</p>")
	}
	b.WriteString("<h3>Articles demandés</h3><ul>")
	for _, item := range quote.Items {
		fmt.Fprintf(&b, "<li>%s — quantité : %d</li>", html.EscapeString(item.ProductName), item.Quantity)
	}
	b.WriteString("</ul>")
	return b.String()
}

func plainTextQuote(quote *models.QuoteRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Nouvelle demande de devis\n\nNom : %s\nEmail : %s\n", quote.CustomerName, quote.CustomerEmail)
	if quote.CustomerPhone != nil && *quote.CustomerPhone != "" {
		fmt.Fprintf(&b, "Téléphone : %s\n", *quote.CustomerPhone)
	}
	if quote.Message != nil && *quote.Message != "" {
		fmt.Fprintf(&b, "\nMessage :\n%s\n", *quote.Message)
	}
	b.WriteString("\nArticles demandés :\n")
	for _, item := range quote.Items {
		fmt.Fprintf(&b, "- %s (quantité : %d)\n", item.ProductName, item.Quantity)
	}
	return b.String()
}
