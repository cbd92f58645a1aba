// Copyright 2024 Northern.tech AS
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package smtp

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/labinventory/inventory/model"
)

const (
	defaultTimeout = 10 * time.Second
)

// Configuration errors
var (
	ErrMissingHost = errors.New("smtp: missing host")
	ErrMissingFrom = errors.New("smtp: missing sender address")
)

// Config holds the mail relay settings
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Client delivers notifications as plain text emails
type Client struct {
	addr string
	host string
	from string
	auth smtp.Auth
}

// NewClient returns a new SMTP client
func NewClient(config Config) (*Client, error) {
	if config.Host == "" {
		return nil, ErrMissingHost
	}
	if config.From == "" {
		return nil, ErrMissingFrom
	}
	port := config.Port
	if port == 0 {
		port = 25
	}
	c := &Client{
		addr: net.JoinHostPort(config.Host, strconv.Itoa(port)),
		host: config.Host,
		from: config.From,
	}
	if config.Username != "" {
		c.auth = smtp.PlainAuth("", config.Username, config.Password, config.Host)
	}
	return c, nil
}

func (c *Client) message(n *model.Notification, now time.Time) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", c.from)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(n.Recipients, ", "))
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", n.Subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", now.Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	buf.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	buf.WriteString("\r\n")
	body := strings.ReplaceAll(n.Body, "\r\n", "\n")
	buf.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return buf.Bytes()
}

// Notify sends the notification to all of its recipients in one mail
// transaction.
func (c *Client) Notify(ctx context.Context, n *model.Notification) error {
	if len(n.Recipients) == 0 {
		return nil
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultTimeout)
		defer cancel()
	}
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return errors.Wrap(err, "smtp: failed to connect")
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	client, err := smtp.NewClient(conn, c.host)
	if err != nil {
		conn.Close()
		return errors.Wrap(err, "smtp: handshake failed")
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		err = client.StartTLS(&tls.Config{ServerName: c.host})
		if err != nil {
			return errors.Wrap(err, "smtp: failed to start TLS")
		}
	}
	if c.auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err = client.Auth(c.auth); err != nil {
				return errors.Wrap(err, "smtp: authentication failed")
			}
		}
	}
	if err = client.Mail(c.from); err != nil {
		return errors.Wrap(err, "smtp: sender rejected")
	}
	for _, rcpt := range n.Recipients {
		if err = client.Rcpt(rcpt); err != nil {
			return errors.Wrapf(err, "smtp: recipient %s rejected", rcpt)
		}
	}
	w, err := client.Data()
	if err != nil {
		return errors.Wrap(err, "smtp: failed to start message")
	}
	if _, err = w.Write(c.message(n, time.Now())); err != nil {
		return errors.Wrap(err, "smtp: failed to write message")
	}
	if err = w.Close(); err != nil {
		return errors.Wrap(err, "smtp: message rejected")
	}
	return client.Quit()
}
