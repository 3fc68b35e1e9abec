package scribe

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/equiscribe/scribego/internal/app/scribe/api"
	"github.com/equiscribe/scribego/internal/pkg/audit"
	"github.com/equiscribe/scribego/internal/pkg/cmdapp"
	"github.com/equiscribe/scribego/internal/pkg/domain"
	"github.com/equiscribe/scribego/internal/pkg/errs"
	"github.com/equiscribe/scribego/internal/pkg/tenancy"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

//streamBase64Prefix marks text frames carrying base64 encoded audio
const streamBase64Prefix = "AUDIO_BASE64:"

//WsConn is interface for websocket handling in the live transcription service
type WsConn interface {
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
	WriteJSON(v interface{}) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
}

type streamReply struct {
	PartialText string `json:"partial_text"`
	TotalBytes  int64  `json:"total_bytes"`
}

type streamError struct {
	Error      string `json:"error"`
	TotalBytes int64  `json:"total_bytes,omitempty"`
}

type streamFinal struct {
	Type string                   `json:"type"`
	Job  *domain.TranscriptionJob `json:"job"`
}

//streamState keeps per connection data of one live transcription stream
type streamState struct {
	data           *ServiceData
	tenant         string
	subject        string
	languageCode   string
	targetLanguage string
	sessionID      string
	tempName       string
	totalBytes     int64
}

type streamHandler struct {
	data *ServiceData
}

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	}}

func (h streamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cmdapp.Log.Infof("ws request from %s", r.Host)

	st := newStreamState(h.data, r)
	c, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "Can not init ws connection", http.StatusBadRequest)
		cmdapp.Log.Error(err)
		return
	}
	go handleStream(c, st)
}

func newStreamState(data *ServiceData, r *http.Request) *streamState {
	ctx := r.Context()
	res := &streamState{data: data, tenant: tenancy.FromContext(ctx), subject: subjectFrom(ctx)}
	q := r.URL.Query()
	res.languageCode = q.Get(api.PrmLanguageCode)
	res.targetLanguage = q.Get(api.PrmTargetLanguage)
	if id := q.Get(api.PrmSessionID); id != "" {
		// a malformed session id is treated as no session
		if _, err := uuid.Parse(id); err == nil {
			res.sessionID = id
		}
	}
	res.tempName = "ws-" + uuid.New().String() + ".wav"
	return res
}

func handleStream(conn WsConn, st *streamState) {
	defer st.cleanup()
	defer conn.Close()
	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			cmdapp.Log.Error(err)
			return
		}
		if mt == websocket.BinaryMessage {
			if !st.addChunk(conn, message) {
				return
			}
			continue
		}
		text := string(message)
		if strings.HasPrefix(text, streamBase64Prefix) {
			chunk, err := base64.StdEncoding.DecodeString(text[len(streamBase64Prefix):])
			if err != nil {
				sendJSON(conn, streamError{Error: "Invalid base64 audio chunk"})
				continue
			}
			if !st.addChunk(conn, chunk) {
				return
			}
			continue
		}
		if strings.ToLower(text) == "stop" {
			st.stop(conn)
			return
		}
	}
}

//addChunk buffers the chunk and replies with an updated partial transcript.
//Returns false when the stream limit is exceeded and the stream must end
func (st *streamState) addChunk(conn WsConn, chunk []byte) bool {
	st.totalBytes += int64(len(chunk))
	if st.data.StreamLimit > 0 && st.totalBytes > st.data.StreamLimit {
		sendJSON(conn, streamError{Error: "Maximum stream size exceeded.", TotalBytes: st.totalBytes})
		closeStream(conn, websocket.ClosePolicyViolation)
		return false
	}
	if err := st.data.AudioStore.Append(st.tempName, chunk); err != nil {
		cmdapp.Log.Error(err)
	}
	sendJSON(conn, streamReply{PartialText: st.partialText(), TotalBytes: st.totalBytes})
	return true
}

//partialText runs ASR over the buffered audio, falling back to a byte
//counter when the backend fails or returns nothing
func (st *streamState) partialText() string {
	res := fmt.Sprintf("Received %d bytes of audio (demo)", st.totalBytes)
	text, err := st.data.StreamASR.Transcribe(st.data.AudioStore.Path(st.tempName), st.languageCode)
	if err == nil && text != "" {
		res = text
	}
	return res
}

//stop persists the buffered audio as a transcription job and finishes the stream
func (st *streamState) stop(conn WsConn) {
	var job *domain.TranscriptionJob
	if st.totalBytes > 0 {
		var err error
		job, err = st.data.Transcriptions.Create(st.tenant, st.data.AudioStore.Path(st.tempName),
			st.languageCode, st.targetLanguage)
		if err != nil {
			cmdapp.Log.Error(err)
			job = nil
		} else if st.sessionID != "" {
			if _, err := st.data.Sessions.AttachJob(st.tenant, st.sessionID, job.ID); err != nil {
				if errs.KindOf(err) != errs.NotFound {
					cmdapp.Log.Error(err)
				}
			}
		}
	}
	sendJSON(conn, streamFinal{Type: "final", Job: job})

	resID := ""
	if job != nil {
		resID = job.ID
	}
	st.data.Audit.Log(audit.Event{Action: "live_transcription_complete",
		ResourceType: "transcription_job", ResourceID: resID, Subject: st.subject,
		Extra: map[string]interface{}{"total_bytes": st.totalBytes}})

	closeStream(conn, websocket.CloseNormalClosure)
}

//cleanup drops the buffered audio file of the closed stream
func (st *streamState) cleanup() {
	if _, err := os.Stat(st.data.AudioStore.Path(st.tempName)); err == nil {
		cmdapp.LogIf(st.data.AudioStore.Remove(st.tempName))
	}
}

func sendJSON(conn WsConn, v interface{}) {
	if err := conn.WriteJSON(v); err != nil {
		cmdapp.Log.Error(err)
	}
}

func closeStream(conn WsConn, code int) {
	msg := websocket.FormatCloseMessage(code, "")
	if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second)); err != nil {
		cmdapp.Log.Error(err)
	}
}
