package transcriber

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/equiscribe/scribego/internal/pkg/cmdapp"
	"github.com/equiscribe/scribego/internal/pkg/utils"
	"github.com/pkg/errors"
)

//HTTPTranscriber sends audio to an on prem speech recognition service
type HTTPTranscriber struct {
	httpclient *http.Client
	url        string
	bp         backoffProvider
}

//NewHTTPTranscriber creates the client for the backend.asrURL setting
func NewHTTPTranscriber() (*HTTPTranscriber, error) {
	res := HTTPTranscriber{}
	var err error
	res.url, err = utils.GetURLFromConfig("backend.asrURL")
	if err != nil {
		return nil, err
	}
	res.httpclient = &http.Client{Timeout: time.Minute}
	res.bp = &expBackOffProvider{}
	return &res, nil
}

// Transcribe posts the audio file and returns the recognized text.
// Failed calls are retried unless the service rejects the audio.
func (sp *HTTPTranscriber) Transcribe(audioPath, languageCode string) (string, error) {
	var res string
	op := func() error {
		var err error
		res, err = sp.transcribe(audioPath, languageCode)
		if errors.Cause(err) == utils.ErrWrongHTTPCall {
			return backoff.Permanent(err)
		}
		return err
	}
	err := backoff.Retry(op, sp.bp.Get())
	return res, err
}

type recognitionResponse struct {
	Text string `json:"text"`
}

func (sp *HTTPTranscriber) transcribe(audioPath, languageCode string) (string, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return "", errors.Wrap(err, "Can't open audio "+audioPath)
	}
	defer file.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", errors.Wrap(err, "Can't add file to request")
	}
	_, err = io.Copy(part, file)
	if err != nil {
		return "", errors.Wrap(err, "Can't add file to request")
	}
	writer.WriteField("language", languageCode)
	writer.Close()

	cmdapp.Log.Infof("Sending audio to: %s", utils.URLToLog(sp.url))
	req, err := http.NewRequest("POST", sp.url, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := sp.httpclient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	err = utils.ValidateResponse(resp)
	if err != nil {
		return "", errors.Wrap(err, "Can't transcribe")
	}
	var respData recognitionResponse
	err = json.NewDecoder(resp.Body).Decode(&respData)
	if err != nil {
		return "", errors.Wrap(err, "Can't decode response")
	}
	return respData.Text, nil
}

//HTTPTranslator sends text to an on prem translation service
type HTTPTranslator struct {
	httpclient *http.Client
	url        string
	bp         backoffProvider
}

//NewHTTPTranslator creates the client for the backend.translateURL setting
func NewHTTPTranslator() (*HTTPTranslator, error) {
	res := HTTPTranslator{}
	var err error
	res.url, err = utils.GetURLFromConfig("backend.translateURL")
	if err != nil {
		return nil, err
	}
	res.httpclient = &http.Client{Timeout: time.Minute}
	res.bp = &expBackOffProvider{}
	return &res, nil
}

type translateRequest struct {
	Text           string `json:"text"`
	SourceLanguage string `json:"source_language,omitempty"`
	TargetLanguage string `json:"target_language"`
}

type translateResponse struct {
	Text string `json:"text"`
}

// Translate posts the text and returns the translation.
// Failed calls are retried unless the service rejects the request.
func (sp *HTTPTranslator) Translate(text, sourceLanguage, targetLanguage string) (string, error) {
	var res string
	op := func() error {
		var err error
		res, err = sp.translate(text, sourceLanguage, targetLanguage)
		if errors.Cause(err) == utils.ErrWrongHTTPCall {
			return backoff.Permanent(err)
		}
		return err
	}
	err := backoff.Retry(op, sp.bp.Get())
	return res, err
}

func (sp *HTTPTranslator) translate(text, sourceLanguage, targetLanguage string) (string, error) {
	b, err := json.Marshal(translateRequest{Text: text, SourceLanguage: sourceLanguage,
		TargetLanguage: targetLanguage})
	if err != nil {
		return "", errors.Wrap(err, "Can't prepare request")
	}
	cmdapp.Log.Infof("Sending text to: %s", utils.URLToLog(sp.url))
	req, err := http.NewRequest("POST", sp.url, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := sp.httpclient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	err = utils.ValidateResponse(resp)
	if err != nil {
		return "", errors.Wrap(err, "Can't translate")
	}
	var respData translateResponse
	err = json.NewDecoder(resp.Body).Decode(&respData)
	if err != nil {
		return "", errors.Wrap(err, "Can't decode response")
	}
	return respData.Text, nil
}
