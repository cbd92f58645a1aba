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
	"context"
	"net"
	"net/textproto"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labinventory/inventory/model"
)

type receivedMail struct {
	From       string
	Recipients []string
	Data       string
}

// fakeServer is a minimal SMTP relay accepting every message. Recipients
// listed in reject are refused with 550.
type fakeServer struct {
	listener net.Listener
	reject   map[string]bool

	mu   sync.Mutex
	mail []receivedMail
}

func newFakeServer(t *testing.T, reject ...string) *fakeServer {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := &fakeServer{
		listener: l,
		reject:   map[string]bool{},
	}
	for _, r := range reject {
		srv.reject[r] = true
	}
	go srv.serve()
	t.Cleanup(func() { l.Close() })
	return srv
}

func (s *fakeServer) config() Config {
	host, port, _ := net.SplitHostPort(s.listener.Addr().String())
	p, _ := strconv.Atoi(port)
	return Config{Host: host, Port: p, From: "inventory@example.com"}
}

func (s *fakeServer) received() []receivedMail {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]receivedMail(nil), s.mail...)
}

func (s *fakeServer) serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		go s.handle(textproto.NewConn(conn))
	}
}

func (s *fakeServer) handle(conn *textproto.Conn) {
	defer conn.Close()
	var mail receivedMail
	_ = conn.PrintfLine("220 localhost ESMTP")
	for {
		line, err := conn.ReadLine()
		if err != nil {
			return
		}
		cmd := strings.ToUpper(strings.SplitN(line, " ", 2)[0])
		arg := strings.TrimSpace(strings.TrimPrefix(line, strings.SplitN(line, " ", 2)[0]))
		switch cmd {
		case "EHLO", "HELO":
			_ = conn.PrintfLine("250 localhost")
		case "MAIL":
			mail = receivedMail{From: strings.Trim(arg[len("FROM:"):], "<> ")}
			_ = conn.PrintfLine("250 OK")
		case "RCPT":
			rcpt := strings.Trim(arg[len("TO:"):], "<> ")
			if s.reject[rcpt] {
				_ = conn.PrintfLine("550 no such user")
				continue
			}
			mail.Recipients = append(mail.Recipients, rcpt)
			_ = conn.PrintfLine("250 OK")
		case "DATA":
			_ = conn.PrintfLine("354 go ahead")
			data, err := conn.ReadDotBytes()
			if err != nil {
				return
			}
			mail.Data = string(data)
			s.mu.Lock()
			s.mail = append(s.mail, mail)
			s.mu.Unlock()
			_ = conn.PrintfLine("250 OK")
		case "QUIT":
			_ = conn.PrintfLine("221 bye")
			return
		default:
			_ = conn.PrintfLine("250 OK")
		}
	}
}

func TestNewClient(t *testing.T) {
	testCases := []struct {
		Name   string
		Config Config
		Addr   string
		Error  string
	}{
		{
			Name:   "ok",
			Config: Config{Host: "mail.example.com", Port: 587, From: "a@example.com"},
			Addr:   "mail.example.com:587",
		},
		{
			Name:   "default port",
			Config: Config{Host: "mail.example.com", From: "a@example.com"},
			Addr:   "mail.example.com:25",
		},
		{
			Name:   "missing host",
			Config: Config{From: "a@example.com"},
			Error:  "smtp: missing host",
		},
		{
			Name:   "missing sender",
			Config: Config{Host: "mail.example.com"},
			Error:  "smtp: missing sender address",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			c, err := NewClient(tc.Config)
			if tc.Error != "" {
				assert.EqualError(t, err, tc.Error)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.Addr, c.addr)
		})
	}
}

func TestNotify(t *testing.T) {
	srv := newFakeServer(t)
	c, err := NewClient(srv.config())
	require.NoError(t, err)

	err = c.Notify(context.Background(), &model.Notification{
		Kind:       model.NotificationLowDiskSpace,
		Recipients: []string{"a@example.com", "b@example.com"},
		Subject:    "Inventory - low disk space on pc-1",
		Body:       "Free space: 5.00 GB\nTotal space: 100.00 GB\n",
	})
	require.NoError(t, err)

	mail := srv.received()
	require.Len(t, mail, 1)
	assert.Equal(t, "inventory@example.com", mail[0].From)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, mail[0].Recipients)
	assert.Contains(t, mail[0].Data, "To: a@example.com, b@example.com\n")
	assert.Contains(t, mail[0].Data, "Subject: Inventory - low disk space on pc-1\n")
	assert.Contains(t, mail[0].Data, "Free space: 5.00 GB\nTotal space: 100.00 GB\n")
}

func TestNotifyNoRecipients(t *testing.T) {
	srv := newFakeServer(t)
	c, err := NewClient(srv.config())
	require.NoError(t, err)

	err = c.Notify(context.Background(), &model.Notification{Subject: "x"})
	assert.NoError(t, err)
	assert.Empty(t, srv.received())
}

func TestNotifyRecipientRejected(t *testing.T) {
	srv := newFakeServer(t, "b@example.com")
	c, err := NewClient(srv.config())
	require.NoError(t, err)

	err = c.Notify(context.Background(), &model.Notification{
		Recipients: []string{"a@example.com", "b@example.com"},
		Subject:    "x",
		Body:       "y",
	})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "smtp: recipient b@example.com rejected")
	}
	assert.Empty(t, srv.received())
}

func TestNotifyConnectionRefused(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().(*net.TCPAddr)
	l.Close()

	c, err := NewClient(Config{Host: "127.0.0.1", Port: addr.Port, From: "a@example.com"})
	require.NoError(t, err)
	err = c.Notify(context.Background(), &model.Notification{
		Recipients: []string{"a@example.com"},
	})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "smtp: failed to connect")
	}
}
