package analysisHandler

import (
	"FaceGeometry/internal/api/analysis"
	"FaceGeometry/internal/middleware"
	contextPkg "FaceGeometry/pkg/context"
	"github.com/gofiber/websocket/v2"
	"golang.org/x/net/context"
	"time"
)

const (
	maxReadTimeout = 60 * time.Second
	writeTimeout   = 10 * time.Second
)

// frameDecoder turns one websocket message into a stream frame.
type frameDecoder func(messageType int, message []byte) (analysis.StreamFrame, error)

func (h *AnalysisHandler) handleLandmarkWebSocket(c *websocket.Conn) {
	h.serveStream(c, "landmark", func(messageType int, message []byte) (analysis.StreamFrame, error) {
		var frame analysis.StreamFrame
		if messageType != websocket.TextMessage && messageType != websocket.BinaryMessage {
			return frame, analysis.ErrInvalidFrame
		}
		if err := json.Unmarshal(message, &frame); err != nil {
			return frame, analysis.ErrInvalidFrame
		}
		return frame, nil
	})
}

func (h *AnalysisHandler) handleCameraWebSocket(c *websocket.Conn) {
	h.serveStream(c, "camera", func(messageType int, message []byte) (analysis.StreamFrame, error) {
		if messageType != websocket.BinaryMessage {
			return analysis.StreamFrame{}, analysis.ErrInvalidFrame
		}
		mesh, err := h.analysisService.ProcessCameraFrame(message)
		if err != nil {
			return analysis.StreamFrame{}, err
		}
		return analysis.StreamFrame{Faces: mesh.Faces}, nil
	})
}

func streamContext(c *websocket.Conn) context.Context {
	requestID, _ := c.Locals(middleware.RequestIDKey).(string)
	if requestID == "" {
		requestID = "unknown"
	}
	return contextPkg.WithRequestID(context.Background(), requestID)
}

func streamOptions(c *websocket.Conn) analysis.StreamOptions {
	return analysis.StreamOptions{
		ProfileID: c.Query("profile_id"),
		SessionID: c.Query("session_id"),
		Midpoint:  c.Query("midpoint") == "true",
	}
}

func (h *AnalysisHandler) serveStream(c *websocket.Conn, kind string, decode frameDecoder) {
	log := h.log.WithField("stream", kind)
	log.Info("WebSocket client connected")
	defer log.Info("WebSocket client disconnected")

	ctx := streamContext(c)
	log = log.WithField("request_id", contextPkg.GetRequestID(ctx))

	stream, err := h.analysisService.NewStream(ctx, streamOptions(c))
	if err != nil {
		log.Warnf("Rejecting stream: %v", err)
		_ = c.WriteJSON(map[string]string{"error": err.Error()})
		return
	}

	c.SetPingHandler(func(data string) error {
		log.Debug("Received ping, sending pong")
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			log.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	for {
		if err := c.SetReadDeadline(time.Now().Add(maxReadTimeout)); err != nil {
			log.Errorf("Error setting read deadline: %v", err)
			break
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Errorf("WebSocket error: %v", err)
			} else {
				log.Info("WebSocket connection closed")
			}
			break
		}

		var reply interface{}
		frame, err := decode(messageType, message)
		if err != nil {
			log.Debugf("Skipping frame: %v", err)
			reply = map[string]string{"error": err.Error()}
		} else {
			reply = stream.Process(frame)
		}

		if err := c.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
			log.Errorf("Error setting write deadline: %v", err)
			break
		}

		if err := c.WriteJSON(reply); err != nil {
			log.Errorf("Error writing JSON response: %v", err)
			break
		}

		if err := c.SetWriteDeadline(time.Time{}); err != nil {
			log.Errorf("Error resetting write deadline: %v", err)
			break
		}
	}
}
