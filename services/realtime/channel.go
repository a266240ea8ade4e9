package realtimesvc

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/unicrm/unicli/core"
)

// Channel is the realtime notification connection: a single shared socket,
// authenticated at connect time with the session token, fanning events out
// to in-process subscribers. There is no buffering and no automatic
// reconnect; the auth layer reconnects with a fresh token on next login.
type Channel struct {
	url      string
	notifier core.Notifier
	logger   core.Logger

	mu     sync.Mutex
	conn   *websocket.Conn
	subs   map[string][]subscriber
	nextID int
}

type subscriber struct {
	id int
	fn func(json.RawMessage)
}

func NewChannel(url string, notifier core.Notifier, logger core.Logger) *Channel {
	return &Channel{
		url:      url,
		notifier: notifier,
		logger:   logger,
		subs:     make(map[string][]subscriber),
	}
}

// Connect dials the notification server and authenticates with token.
// Connecting while already connected is a no-op.
func (ch *Channel) Connect(ctx context.Context, token string) error {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if ch.conn != nil {
		return nil
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, ch.url, nil)
	if err != nil {
		return errors.Wrap(err, "realtime: dial")
	}

	var auth authFrame
	auth.Auth.Token = token
	if err = conn.WriteJSON(auth); err != nil {
		_ = conn.Close()
		return errors.Wrap(err, "realtime: auth")
	}

	ch.conn = conn
	go ch.readLoop(conn)
	ch.logger.Debug("realtime: connected")
	return nil
}

// Disconnect tears down the socket and clears all subscriptions.
func (ch *Channel) Disconnect() {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if ch.conn != nil {
		_ = ch.conn.Close()
		ch.conn = nil
	}
	ch.subs = make(map[string][]subscriber)
}

// Connected reports whether the socket is currently open.
func (ch *Channel) Connected() bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.conn != nil
}

// JoinRoom asks the server to include this client in a room's broadcasts.
func (ch *Channel) JoinRoom(room string) error {
	return ch.send(cmdJoinRoom, room)
}

// LeaveRoom is the inverse of JoinRoom.
func (ch *Channel) LeaveRoom(room string) error {
	return ch.send(cmdLeaveRoom, room)
}

func (ch *Channel) send(event string, data interface{}) error {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if ch.conn == nil {
		return errors.New("realtime: not connected")
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "realtime: marshal")
	}
	return ch.conn.WriteJSON(frame{Event: event, Data: raw})
}

// OnNotification subscribes to generic notifications; the returned func
// unregisters the callback.
func (ch *Channel) OnNotification(fn func(Notification)) func() {
	return ch.subscribe(EventNotification, func(raw json.RawMessage) {
		var ev Notification
		if err := json.Unmarshal(raw, &ev); err == nil {
			fn(ev)
		}
	})
}

// OnGradeUpdated subscribes to grade updates.
func (ch *Channel) OnGradeUpdated(fn func(GradeUpdate)) func() {
	return ch.subscribe(EventGradeUpdated, func(raw json.RawMessage) {
		var ev GradeUpdate
		if err := json.Unmarshal(raw, &ev); err == nil {
			fn(ev)
		}
	})
}

// OnEnrollmentStatus subscribes to enrollment status changes.
func (ch *Channel) OnEnrollmentStatus(fn func(EnrollmentUpdate)) func() {
	return ch.subscribe(EventEnrollmentStatus, func(raw json.RawMessage) {
		var ev EnrollmentUpdate
		if err := json.Unmarshal(raw, &ev); err == nil {
			fn(ev)
		}
	})
}

func (ch *Channel) subscribe(event string, fn func(json.RawMessage)) func() {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	ch.nextID++
	id := ch.nextID
	ch.subs[event] = append(ch.subs[event], subscriber{id: id, fn: fn})

	return func() {
		ch.mu.Lock()
		defer ch.mu.Unlock()
		subs := ch.subs[event]
		for i, sub := range subs {
			if sub.id == id {
				ch.subs[event] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

func (ch *Channel) readLoop(conn *websocket.Conn) {
	for {
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			ch.drop(conn, err)
			return
		}
		ch.dispatch(f)
	}
}

// drop marks the channel disconnected after a read failure; subscriptions
// survive so a later Connect resumes delivery.
func (ch *Channel) drop(conn *websocket.Conn, err error) {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if ch.conn == conn {
		_ = conn.Close()
		ch.conn = nil
		ch.logger.Debug("realtime: disconnected", err)
	}
}

// dispatch shows the built-in notice for the event kind, then forwards the
// payload to subscribers in registration order. Events with no subscribers
// are dropped after the notice.
func (ch *Channel) dispatch(f frame) {
	ch.notice(f)

	ch.mu.Lock()
	subs := append([]subscriber(nil), ch.subs[f.Event]...)
	ch.mu.Unlock()

	for _, sub := range subs {
		sub.fn(f.Data)
	}
}

func (ch *Channel) notice(f frame) {
	switch f.Event {
	case EventNotification:
		var ev Notification
		if err := json.Unmarshal(f.Data, &ev); err == nil {
			ch.notifier.Success(ev.Message)
		}
	case EventGradeUpdated:
		var ev GradeUpdate
		if err := json.Unmarshal(f.Data, &ev); err == nil {
			ch.notifier.Info(fmt.Sprintf("Grade updated for %s", ev.Assignment))
		}
	case EventEnrollmentStatus:
		var ev EnrollmentUpdate
		if err := json.Unmarshal(f.Data, &ev); err != nil {
			return
		}
		if ev.Status == "APPROVED" {
			ch.notifier.Success(fmt.Sprintf("Enrollment approved for %s", ev.Course))
		} else {
			ch.notifier.Error(fmt.Sprintf("Enrollment rejected for %s", ev.Course))
		}
	default:
		ch.logger.Debug("realtime: unknown event", f.Event)
	}
}
