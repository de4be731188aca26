package webserve

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/akbargherbal/git-viz-sub001/schema"
)

const (
	progressWriteWait = 10 * time.Second
	progressPongWait  = 60 * time.Second
	progressPingEvery = (progressPongWait * 9) / 10
)

var progressUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// progressMessage is one frame of the websocket stream. Ticks come through
// as type "progress"; the stream ends with one "complete" or "error" frame.
type progressMessage struct {
	Type    string           `json:"type"`
	Phase   schema.LoadPhase `json:"phase,omitempty"`
	Loaded  int              `json:"loaded"`
	Total   int              `json:"total"`
	Cached  bool             `json:"cached,omitempty"`
	Files   int              `json:"files,omitempty"`
	Buckets int              `json:"buckets,omitempty"`
	Message string           `json:"message,omitempty"`
}

// handleSnapshot answers GET /api/snapshot with the full derived bundle for
// the requested source, loading it on a cache miss.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	reqCfg, err := s.requestConfig(strings.TrimSpace(r.URL.Query().Get("source")))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snapshot, cached, err := s.loadAndCache(r.Context(), reqCfg, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if cached {
		w.Header().Set("X-Gitviz-Cache", "hit")
	}
	if err := json.NewEncoder(w).Encode(snapshot); err != nil {
		// Too late for an error status once the body started streaming.
		return
	}
}

// handleProgress upgrades GET /api/progress to a websocket, runs the load
// for the requested source and streams its stage ticks. The connection
// closes after the final frame; a cached snapshot yields just that frame.
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	reqCfg, err := s.requestConfig(strings.TrimSpace(r.URL.Query().Get("source")))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := progressUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(progressPongWait)); err != nil {
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(progressPongWait))
	})

	// Reader exists to notice the client going away; inbound frames are
	// otherwise ignored.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	writeCh := make(chan progressMessage, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(progressPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-writeCh:
				if !ok {
					return
				}
				if err := conn.SetWriteDeadline(time.Now().Add(progressWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(msg); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(progressWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	snapshot, cached, loadErr := s.loadAndCache(ctx, reqCfg, func(ev schema.ProgressEvent) {
		pushProgress(writeCh, progressMessage{
			Type:   "progress",
			Phase:  ev.Phase,
			Loaded: ev.Loaded,
			Total:  ev.Total,
		})
	})
	if loadErr != nil {
		pushProgress(writeCh, progressMessage{Type: "error", Message: loadErr.Error()})
	} else {
		pushProgress(writeCh, progressMessage{
			Type:    "complete",
			Phase:   schema.PhaseComplete,
			Loaded:  len(schema.AllResources),
			Total:   len(schema.AllResources),
			Cached:  cached,
			Files:   snapshot.Metadata.TotalFiles,
			Buckets: len(snapshot.Activity.Buckets),
		})
	}

	close(writeCh)
	<-writerDone

	deadline := time.Now().Add(progressWriteWait)
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
}

// pushProgress enqueues a frame without ever blocking the loader. When the
// buffer is full the oldest queued tick is dropped so the terminal frame
// always gets through.
func pushProgress(writeCh chan progressMessage, msg progressMessage) {
	select {
	case writeCh <- msg:
		return
	default:
	}
	select {
	case <-writeCh:
	default:
	}
	select {
	case writeCh <- msg:
	default:
	}
}
