// Package email delivers finished audit reports over SMTP.
package email

import (
	"fmt"
	"html"
	"net/smtp"
	"strings"

	"github.com/web4all/web4all/internal/model"
)

// Mailer sends audit reports by email.
type Mailer struct {
	config model.EmailConfig
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewMailer creates a mailer from configuration.
func NewMailer(cfg model.EmailConfig) (*Mailer, error) {
	if cfg.Host == "" || cfg.From == "" {
		return nil, fmt.Errorf("email: host and from address are required")
	}
	return &Mailer{config: cfg, send: smtp.SendMail}, nil
}

// SendReport emails the rendered report to the recipient.
func (m *Mailer) SendReport(to string, report *model.Report) error {
	if !strings.Contains(to, "@") {
		return fmt.Errorf("email: invalid recipient %q", to)
	}

	subject := fmt.Sprintf("Web Accessibility Report for %s", report.Subject)
	msg := m.buildMessage(to, subject, ReportHTML(report))

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	var auth smtp.Auth
	if m.config.Username != "" {
		auth = smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	}

	if err := m.send(addr, auth, m.config.From, []string{to}, msg); err != nil {
		return fmt.Errorf("email: send: %w", err)
	}
	return nil
}

// buildMessage assembles an RFC 5322 message with an HTML body.
func (m *Mailer) buildMessage(to, subject, htmlBody string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.config.From)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}

// ReportHTML renders the report as a self-contained HTML document.
func ReportHTML(report *model.Report) string {
	var b strings.Builder

	b.WriteString("<html><body>")
	fmt.Fprintf(&b, "<h1>Web Accessibility Report</h1>")
	fmt.Fprintf(&b, "<p>Page: <strong>%s</strong><br>URL: %s<br>Date: %s</p>",
		html.EscapeString(report.Subject),
		html.EscapeString(report.SourceURL),
		report.FetchedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "<h2>Overall Score: %d/100 (%s)</h2>", report.OverallScore, report.Rating)

	b.WriteString("<h2>Category Scores</h2><ul>")
	for _, cat := range model.Categories() {
		fmt.Fprintf(&b, "<li><strong>%s</strong>: %d/100</li>", html.EscapeString(string(cat)), report.Categories[cat])
	}
	b.WriteString("</ul>")

	b.WriteString("<h2>Issues</h2>")
	if len(report.Issues) == 0 {
		b.WriteString("<p>No issues found.</p>")
	} else {
		b.WriteString("<ul>")
		for _, issue := range report.Issues {
			fmt.Fprintf(&b, "<li>[%s/%s] %s", issue.Category, issue.Severity, html.EscapeString(issue.Message))
			if issue.Fix != "" {
				fmt.Fprintf(&b, "<br><em>Fix: %s</em>", html.EscapeString(issue.Fix))
			}
			b.WriteString("</li>")
		}
		b.WriteString("</ul>")
	}

	if report.LLM != nil && report.LLM.Markdown != "" {
		fmt.Fprintf(&b, "<h2>Recommendations</h2><pre>%s</pre>", html.EscapeString(report.LLM.Markdown))
	}

	b.WriteString("</body></html>")
	return b.String()
}
