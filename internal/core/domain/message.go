package domain

// OutreachMessage is a rendered, ready-to-send email for one recipient.
type OutreachMessage struct {
	To       string
	Subject  string
	HTMLBody string

	// InlineLogo, when non-nil, is attached as an inline PNG referenced
	// from the body via cid:LogoName.
	InlineLogo []byte
	LogoName   string
}
