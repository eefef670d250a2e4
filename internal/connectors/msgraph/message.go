package msgraph

import (
	"encoding/base64"

	"github.com/arclight-labs/prospect-cli/internal/core/domain"
)

// Graph sendMail request shape. Only the fields we use.

type sendMailRequest struct {
	Message         graphMessage `json:"message"`
	SaveToSentItems bool         `json:"saveToSentItems"`
}

type graphMessage struct {
	Subject      string           `json:"subject"`
	Body         itemBody         `json:"body"`
	ToRecipients []recipient      `json:"toRecipients"`
	Attachments  []fileAttachment `json:"attachments,omitempty"`
}

type itemBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type recipient struct {
	EmailAddress emailAddress `json:"emailAddress"`
}

type emailAddress struct {
	Address string `json:"address"`
}

type fileAttachment struct {
	ODataType    string `json:"@odata.type"`
	Name         string `json:"name"`
	ContentType  string `json:"contentType"`
	ContentBytes string `json:"contentBytes"`
	IsInline     bool   `json:"isInline"`
	ContentID    string `json:"contentId"`
}

// newSendMailRequest maps a rendered message onto the Graph payload. The
// inline logo, when present, is attached with its content id equal to its
// file name so cid: references in the body resolve in Outlook.
func newSendMailRequest(msg *domain.OutreachMessage) sendMailRequest {
	req := sendMailRequest{
		Message: graphMessage{
			Subject: msg.Subject,
			Body: itemBody{
				ContentType: "HTML",
				Content:     msg.HTMLBody,
			},
			ToRecipients: []recipient{
				{EmailAddress: emailAddress{Address: msg.To}},
			},
		},
		SaveToSentItems: true,
	}

	if len(msg.InlineLogo) > 0 {
		req.Message.Attachments = []fileAttachment{{
			ODataType:    "#microsoft.graph.fileAttachment",
			Name:         msg.LogoName,
			ContentType:  "image/png",
			ContentBytes: base64.StdEncoding.EncodeToString(msg.InlineLogo),
			IsInline:     true,
			ContentID:    msg.LogoName,
		}}
	}

	return req
}
