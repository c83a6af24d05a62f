// Package mailer sends guest recovery emails over SMTP.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer dispatches outgoing mail. When no SMTP address is configured the
// mailer is disabled and Send calls report an error, which callers treat
// as a delivery failure rather than a crash.
type Mailer struct {
	addr     string
	user     string
	password string
	from     string
}

// New creates a Mailer from SMTP settings. addr is host:port.
func New(addr, user, password, from string) *Mailer {
	return &Mailer{addr: addr, user: user, password: password, from: from}
}

// Enabled reports whether the mailer has an SMTP endpoint configured.
func (m *Mailer) Enabled() bool {
	return m.addr != ""
}

// SendRecovery emails a guest a single-use link restoring their identity
// on the named wishlist.
func (m *Mailer) SendRecovery(to, wishlistTitle, recoveryURL string) error {
	if !m.Enabled() {
		return fmt.Errorf("mailer: smtp not configured")
	}

	subject := fmt.Sprintf("Restore your reservations on %q", wishlistTitle)
	body := fmt.Sprintf(`Hello!

Someone (hopefully you) asked to restore guest reservations on the wishlist %q.

Open the link below to pick up where you left off:

%s

The link works once and expires in 30 minutes. If you did not request this, ignore this email.
`, wishlistTitle, recoveryURL)

	message := fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"\r\n"+
		"%s\r\n", m.from, to, subject, body)

	var a smtp.Auth
	if m.user != "" {
		host := m.addr
		if i := strings.LastIndex(host, ":"); i >= 0 {
			host = host[:i]
		}
		a = smtp.PlainAuth("", m.user, m.password, host)
	}

	if err := smtp.SendMail(m.addr, a, m.from, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("mailer: send failed: %w", err)
	}
	return nil
}
