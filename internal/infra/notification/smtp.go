package notification

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"mime"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"slotbook/internal/pkg/config"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var ErrNoRecipients = errs.Mark(errs.New("message has no recipients"), errs.ErrValidation)

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type SMTPSender struct {
	addr   string
	host   string
	from   string
	auth   smtp.Auth
	send   sendFunc
	tracer trace.Tracer
}

func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	host := strings.TrimSpace(cfg.Host)
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, host)
	}
	return &SMTPSender{
		addr:   net.JoinHostPort(host, strconv.Itoa(cfg.Port)),
		host:   host,
		from:   cfg.From,
		auth:   auth,
		send:   smtp.SendMail,
		tracer: otel.Tracer("slotbook/notification"),
	}
}

// Send delivers the message. net/smtp has no context support, so the call
// runs in a goroutine and ctx only bounds how long the caller waits.
func (s *SMTPSender) Send(ctx context.Context, msg shared.Message) error {
	ctx, span := s.tracer.Start(ctx, "notification.Send",
		trace.WithAttributes(attribute.Int("mail.recipients", len(msg.To))))
	defer span.End()

	if len(msg.To) == 0 {
		return ErrNoRecipients
	}
	raw, err := BuildMIME(s.from, msg, time.Now())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- s.send(s.addr, s.auth, s.from, msg.To, raw)
	}()

	select {
	case err := <-done:
		if err != nil {
			err = errs.Wrap(err, "smtp send")
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return err
	case <-ctx.Done():
		return errs.Wrap(ctx.Err(), "smtp send")
	}
}

// BuildMIME renders a multipart/mixed message with an HTML body and any
// attachments. text/calendar parts are sent inline so mail clients offer
// accept and decline buttons.
func BuildMIME(from string, msg shared.Message, now time.Time) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("From", from)
	header.Set("To", strings.Join(msg.To, ", "))
	header.Set("Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	header.Set("Date", now.Format(time.RFC1123Z))
	header.Set("Message-ID", fmt.Sprintf("<%s@slotbook>", uuid.NewString()))
	header.Set("MIME-Version", "1.0")
	header.Set("Content-Type", "multipart/mixed; boundary="+mw.Boundary())
	writeHeader(&buf, header)

	body, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {"text/html; charset=utf-8"},
		"Content-Transfer-Encoding": {"base64"},
	})
	if err != nil {
		return nil, errs.Wrap(err, "create body part")
	}
	if err := writeBase64(body, []byte(msg.HTMLBody)); err != nil {
		return nil, err
	}

	for _, a := range msg.Attachments {
		disposition := "attachment"
		if strings.HasPrefix(a.ContentType, "text/calendar") {
			disposition = "inline"
		}
		part, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {a.ContentType},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {mime.FormatMediaType(disposition, map[string]string{"filename": a.Filename})},
		})
		if err != nil {
			return nil, errs.Wrap(err, "create attachment part")
		}
		if err := writeBase64(part, a.Data); err != nil {
			return nil, err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, errs.Wrap(err, "close multipart")
	}
	return buf.Bytes(), nil
}

func writeHeader(buf *bytes.Buffer, h textproto.MIMEHeader) {
	for _, k := range []string{"From", "To", "Subject", "Date", "Message-ID", "MIME-Version", "Content-Type"} {
		fmt.Fprintf(buf, "%s: %s\r\n", k, h.Get(k))
	}
	buf.WriteString("\r\n")
}

// writeBase64 wraps encoded output at 76 columns.
func writeBase64(w interface{ Write([]byte) (int, error) }, data []byte) error {
	enc := base64.StdEncoding.EncodeToString(data)
	for len(enc) > 76 {
		if _, err := fmt.Fprintf(w, "%s\r\n", enc[:76]); err != nil {
			return errs.Wrap(err, "write part")
		}
		enc = enc[76:]
	}
	if _, err := fmt.Fprintf(w, "%s\r\n", enc); err != nil {
		return errs.Wrap(err, "write part")
	}
	return nil
}

// LogSender stands in for SMTP when no host is configured.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, msg shared.Message) error {
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}
	slog.InfoContext(ctx, "email not sent, smtp disabled",
		slog.Any("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.Int("attachments", len(msg.Attachments)),
	)
	return nil
}
