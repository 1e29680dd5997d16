package notify

// Config holds configuration for run notifications.
// Email is sent when Host is set; Slack is posted when WebhookURL is set.
type Config struct {
	// Host is the SMTP server host.
	Host string `mapstructure:"host" default:""`
	// Port is the SMTP server port.
	Port string `mapstructure:"port" default:"465"`
	// ImplicitTLS dials TLS directly (SMTPS) instead of upgrading with STARTTLS.
	ImplicitTLS bool `mapstructure:"implicit_tls" default:"true"`
	// Username is the SMTP user.
	Username string `mapstructure:"username" default:""`
	// Password is the SMTP password.
	Password string `mapstructure:"password" default:""`
	// From is the sender address.
	From string `mapstructure:"from" default:""`
	// To is a comma separated list of recipients.
	To string `mapstructure:"to" default:""`
	// Attachment is a log file attached to emails when it exists (e.g. app.log).
	Attachment string `mapstructure:"attachment" default:""`
	// WebhookURL is a Slack incoming webhook.
	WebhookURL string `mapstructure:"webhook_url" default:""`
}
