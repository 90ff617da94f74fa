package generate

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"

	"github.com/randbase/randbase/api"
	"github.com/randbase/randbase/log"
	"github.com/randbase/randbase/rng"
)

func allowAnyOrigin(r *http.Request) bool {
	return true
}

func registerStream() error {
	return api.RegisterEndpoint(api.Endpoint{
		Path:        "generate/ws",
		HandlerFunc: handleStream,
		Name:        "Generate Random Bits (Stream)",
		Description: "Upgrades to a websocket where every text frame carrying a length yields one generation payload.",
	})
}

func handleStream(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin:     allowAnyOrigin,
		ReadBufferSize:  1024,
		WriteBufferSize: 65536,
	}
	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorf("generate: upgrade to websocket failed: %s", err)
		return
	}
	defer func() {
		_ = wsConn.Close()
	}()

	for {
		_, msg, err := wsConn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warningf("generate: websocket read error: %s", err)
			}
			return
		}

		data, err := json.Marshal(streamResponse(string(msg)))
		if err != nil {
			log.Errorf("generate: failed to marshal stream payload: %s", err)
			return
		}

		if err := wsConn.WriteMessage(websocket.TextMessage, data); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warningf("generate: websocket write error: %s", err)
			}
			return
		}
	}
}

type streamError struct {
	Error string `json:"error"`
}

// streamResponse turns a single frame into either a payload or an error message.
func streamResponse(frame string) interface{} {
	length, err := parseStreamLength(frame)
	if err != nil {
		requestsFailed.Inc()
		return &streamError{Error: err.Error()}
	}

	payload, err := Sequence(length)
	if err != nil {
		requestsFailed.Inc()
		if errors.Is(err, rng.ErrNotReady) {
			return &streamError{Error: ErrUnavailable.Error()}
		}
		return &streamError{Error: err.Error()}
	}

	requestsOK.Inc()
	return payload
}

// parseStreamLength accepts a bare integer or a json object with a length field.
func parseStreamLength(frame string) (int, error) {
	frame = strings.TrimSpace(frame)

	raw := frame
	if strings.HasPrefix(frame, "{") {
		field := gjson.Get(frame, "length")
		if !field.Exists() {
			return 0, errors.New("length parameter is missing")
		}
		if field.Type != gjson.Number {
			return 0, errMalformedLength(field.String())
		}
		raw = field.Raw
	}

	return checkLength(raw)
}
