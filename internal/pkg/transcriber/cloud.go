package transcriber

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/equiscribe/scribego/internal/pkg/cmdapp"
	"github.com/equiscribe/scribego/internal/pkg/errs"
	"github.com/equiscribe/scribego/internal/pkg/utils"
	"github.com/pkg/errors"
)

//CloudTranslator calls an external LLM gateway for translation.
//Clinical text leaves the deployment, so the backend can only be
//created when cloud processing is explicitly allowed by configuration.
type CloudTranslator struct {
	httpclient *http.Client
	url        string
	key        string
	model      string
	bp         backoffProvider
}

//NewCloudTranslator creates the client when cloud use is allowed
func NewCloudTranslator() (*CloudTranslator, error) {
	if cmdapp.Config.GetBool("backend.onPremOnly") {
		return nil, errs.New(errs.Configuration, "Cloud translation is not available in an on prem only deployment")
	}
	if !cmdapp.Config.GetBool("backend.allowCloudLLM") {
		return nil, errs.New(errs.Configuration, "Cloud translation requires backend.allowCloudLLM")
	}
	res := CloudTranslator{}
	var err error
	res.url, err = utils.GetURLFromConfig("backend.cloudURL")
	if err != nil {
		return nil, err
	}
	res.key = cmdapp.Config.GetString("backend.cloudKey")
	if res.key == "" {
		return nil, errs.New(errs.Configuration, "No backend.cloudKey setting provided")
	}
	res.model = cmdapp.Config.GetString("backend.cloudModel")
	res.httpclient = &http.Client{Timeout: time.Minute}
	res.bp = &expBackOffProvider{}
	return &res, nil
}

type cloudTranslateRequest struct {
	Model          string `json:"model,omitempty"`
	Text           string `json:"text"`
	SourceLanguage string `json:"source_language,omitempty"`
	TargetLanguage string `json:"target_language"`
}

// Translate sends the text to the gateway and returns the translation.
// The cloud allowance is rechecked on every call, a dropped permission
// stops the data flow even for an already constructed client
func (sp *CloudTranslator) Translate(text, sourceLanguage, targetLanguage string) (string, error) {
	if !cmdapp.Config.GetBool("backend.allowCloudLLM") {
		return "", errs.New(errs.Configuration, "Cloud translation requires backend.allowCloudLLM")
	}
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

func (sp *CloudTranslator) translate(text, sourceLanguage, targetLanguage string) (string, error) {
	b, err := json.Marshal(cloudTranslateRequest{Model: sp.model, Text: text,
		SourceLanguage: sourceLanguage, TargetLanguage: targetLanguage})
	if err != nil {
		return "", errors.Wrap(err, "Can't prepare request")
	}
	cmdapp.Log.Infof("Sending text to: %s", utils.URLToLog(sp.url))
	req, err := http.NewRequest("POST", sp.url, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+sp.key)

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
