package client

import (
	"encoding/json"
	"net/url"
	"strings"
	"sync"
	"time"

	"artistcollab/internal/domain"
	"artistcollab/internal/logger"
	"artistcollab/internal/view"

	"github.com/gorilla/websocket"
)

// FeedClient dials the backend's /ws endpoint and fans incoming events out
// to per-table subscriptions. The server already scopes the socket to one
// project, so each Subscribe call opens its own connection and filters by
// table locally.
type FeedClient struct {
	baseURL string
	token   string
}

// NewFeed takes the same http(s) base URL as New and derives the ws scheme
// from it.
func NewFeed(baseURL, token string) *FeedClient {
	return &FeedClient{baseURL: strings.TrimRight(baseURL, "/"), token: token}
}

type wsSubscription struct {
	conn *websocket.Conn
	once sync.Once
	done chan struct{}
}

func (s *wsSubscription) Unsubscribe() {
	s.once.Do(func() {
		close(s.done)
		s.conn.Close()
	})
}

func (f *FeedClient) Subscribe(table, projectID string, handler func(ev domain.Event)) (view.Subscription, error) {
	u, err := url.Parse(f.baseURL)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = "/ws"
	q := u.Query()
	q.Set("project", projectID)
	if f.token != "" {
		q.Set("token", f.token)
	}
	u.RawQuery = q.Encode()

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		return nil, err
	}

	sub := &wsSubscription{conn: conn, done: make(chan struct{})}

	go func() {
		defer conn.Close()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				select {
				case <-sub.done:
				default:
					logger.Warn("feed read failed", "table", table, "error", err)
				}
				return
			}
			var ev domain.Event
			if err := json.Unmarshal(data, &ev); err != nil {
				logger.Warn("feed decode failed", "error", err)
				continue
			}
			if ev.Table != table {
				continue
			}
			select {
			case <-sub.done:
				return
			default:
				handler(ev)
			}
		}
	}()

	return sub, nil
}
