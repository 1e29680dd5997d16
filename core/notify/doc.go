// Package notify delivers the outcome of a sync run to operators.
//
// Every run ends with exactly one Outcome: the job name, whether every report
// succeeded, and the full text the run logged. Notifiers turn that into a
// message:
//
//   - Mailer sends an email whose subject is "<job> - Success" or "<job> - Error".
//     The body restates the result followed by the logs, and the configured log
//     file is attached when it exists. Both SMTPS (implicit TLS, port 465) and
//     plain SMTP with opportunistic STARTTLS are supported.
//   - Slack posts the subject and the tail of the logs to an incoming webhook.
//
// New builds a Multi from whatever is configured; a notifier failing does not
// stop the others from being tried.
//
// Configuration (environment):
//
//	NOTIFY_HOST=smtp.example.com
//	NOTIFY_PORT=465
//	NOTIFY_USERNAME=...
//	NOTIFY_PASSWORD=...
//	NOTIFY_FROM=sync@example.com
//	NOTIFY_TO=data@example.com,ops@example.com
//	NOTIFY_ATTACHMENT=app.log
//	NOTIFY_WEBHOOK_URL=https://hooks.slack.com/services/...
package notify
