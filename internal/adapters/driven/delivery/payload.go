package delivery

import (
	"github.com/custodia-labs/leasefill/internal/core/domain"
)

const mediaTypeDocument = "document"

// gatewayPayload is the body accepted by the messaging gateway.
type gatewayPayload struct {
	Number    string `json:"number"`
	MediaType string `json:"mediatype"`
	MimeType  string `json:"mimetype"`
	FileName  string `json:"fileName"`
	Media     string `json:"media"`
	Caption   string `json:"caption"`
}

// webhookPayload is the body posted to a generic webhook.
type webhookPayload struct {
	Phone    string `json:"phone"`
	Type     string `json:"type"`
	MimeType string `json:"mimetype"`
	Filename string `json:"filename"`
	Base64   string `json:"base64"`
	Caption  string `json:"caption"`
}

// buildPayload returns the request body for the configured target.
func buildPayload(target domain.DeliveryTarget, recipient, filename, encoded, caption string) any {
	if target == domain.DeliveryTargetWebhook {
		return webhookPayload{
			Phone:    recipient,
			Type:     mediaTypeDocument,
			MimeType: domain.DocxMIMEType,
			Filename: filename,
			Base64:   encoded,
			Caption:  caption,
		}
	}
	return gatewayPayload{
		Number:    recipient,
		MediaType: mediaTypeDocument,
		MimeType:  domain.DocxMIMEType,
		FileName:  filename,
		Media:     encoded,
		Caption:   caption,
	}
}
