package websocketPkg

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// meshServer answers every binary frame with one face whose landmark count
// equals the frame length.
func meshServer(t *testing.T) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			points := make([]string, len(msg))
			for i := range points {
				points[i] = `{"x":0.5,"y":0.5,"z":0}`
			}
			reply := `{"status":"ok","width":640,"height":480,"multi_face_landmarks":[[` + strings.Join(points, ",") + `]]}`
			if err := conn.WriteMessage(websocket.TextMessage, []byte(reply)); err != nil {
				return
			}
		}
	}))
}

func TestProcessFaceFrame(t *testing.T) {
	srv := meshServer(t)
	defer srv.Close()

	client := newClient("ws"+strings.TrimPrefix(srv.URL, "http"), quietLogger())
	defer client.CloseConnections()

	if client.IsConnected() {
		t.Fatal("client connected before first use")
	}

	for _, n := range []int{3, 5} {
		result, err := client.ProcessFaceFrame(make([]byte, n))
		if err != nil {
			t.Fatalf("ProcessFaceFrame() error = %v", err)
		}
		if result.Status != "ok" || len(result.Faces) != 1 || len(result.FirstFace()) != n {
			t.Errorf("result = %+v, want one face with %d landmarks", result, n)
		}
	}

	if !client.IsConnected() {
		t.Error("client not connected after use")
	}
}

func TestProcessFaceFrameUnreachable(t *testing.T) {
	client := newClient("ws://127.0.0.1:1/ws", quietLogger())
	_, err := client.ProcessFaceFrame([]byte{1})
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("ProcessFaceFrame() error = %v, want ErrNotConnected", err)
	}
	if client.IsConnected() {
		t.Error("client reports connected after failed dial")
	}
}

func TestProcessFaceFrameConnectionDropped(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn.Close()
	}))
	defer srv.Close()

	client := newClient("ws"+strings.TrimPrefix(srv.URL, "http"), quietLogger())
	_, err := client.ProcessFaceFrame([]byte{1})
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("ProcessFaceFrame() error = %v, want ErrNotConnected", err)
	}
	if client.IsConnected() {
		t.Error("client still connected after the service hung up")
	}
}
