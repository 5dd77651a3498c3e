package realtime_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"inspection-report/internal/realtime"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func startHub(t *testing.T) (*realtime.Hub, *httptest.Server, context.CancelFunc) {
	t.Helper()
	hub := realtime.NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		channel := r.URL.Query().Get("channel")
		if channel == "" {
			channel = realtime.ChannelRecords
		}
		hub.ServeWS(w, r, channel)
	}))

	stop := func() {
		cancel()
		<-done
		srv.Close()
	}
	return hub, srv, stop
}

func dial(t *testing.T, srv *httptest.Server, channel string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?channel=" + channel
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) realtime.Event {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var e realtime.Event
	require.NoError(t, json.Unmarshal(data, &e))
	return e
}

func TestHub_DeliversToChannels(t *testing.T) {
	hub, srv, stop := startHub(t)
	defer stop()

	all := dial(t, srv, realtime.ChannelRecords)
	defer all.Close()
	mine := dial(t, srv, realtime.UserChannel("u1"))
	defer mine.Close()
	other := dial(t, srv, realtime.UserChannel("u2"))
	defer other.Close()

	require.Eventually(t, func() bool {
		return hub.ClientCount(realtime.ChannelRecords) == 1 &&
			hub.ClientCount(realtime.UserChannel("u1")) == 1 &&
			hub.ClientCount(realtime.UserChannel("u2")) == 1
	}, 2*time.Second, 10*time.Millisecond)

	payload := realtime.SubmittedPayload("row-1", "의자", "의자_0301_1015", "https://example.com/x.xlsx")
	require.NoError(t, hub.PublishRecordEvent("u1", realtime.EventRecordSubmitted, payload))

	e := readEvent(t, all)
	assert.Equal(t, realtime.EventRecordSubmitted, e.Type)
	assert.Equal(t, "row-1", e.Payload["rowId"])

	e = readEvent(t, mine)
	assert.Equal(t, realtime.UserChannel("u1"), e.Channel)
	assert.Equal(t, "의자", e.Payload["itemName"])

	other.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _, err := other.ReadMessage()
	assert.Error(t, err, "other users' channels stay quiet")
}

func TestHub_UnregistersClosedClients(t *testing.T) {
	hub, srv, stop := startHub(t)
	defer stop()

	conn := dial(t, srv, realtime.ChannelRecords)
	require.Eventually(t, func() bool { return hub.ClientCount(realtime.ChannelRecords) == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount(realtime.ChannelRecords) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_StopDisconnectsClients(t *testing.T) {
	hub, srv, stop := startHub(t)

	conn := dial(t, srv, realtime.ChannelRecords)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount(realtime.ChannelRecords) == 1 }, 2*time.Second, 10*time.Millisecond)

	stop()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
	assert.ErrorIs(t, hub.Publish(realtime.ChannelRecords, realtime.EventRecordDeleted, realtime.DeletedPayload("row-1")), realtime.ErrHubClosed)
}
