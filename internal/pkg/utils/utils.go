package utils

import (
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/equiscribe/scribego/internal/pkg/cmdapp"
	"github.com/pkg/errors"
)

//URLJoin joins urls with '/'
func URLJoin(urls ...string) string {
	u, err := url.Parse(urls[0])
	if err != nil || u.Host == "" {
		return strings.Join(urls, "/")
	}
	u.Path = path.Join(u.Path, path.Join(urls[1:]...))
	return u.String()
}

//GetURLFromConfig retrieves URL from config and checks it
func GetURLFromConfig(name string) (string, error) {
	return validateConfigURL(cmdapp.Config.GetString(name), name)
}

func validateConfigURL(urlStr, settingName string) (string, error) {
	if urlStr == "" {
		return "", errors.New("No " + settingName + " setting provided")
	}
	url, err := url.Parse(urlStr)
	if err != nil {
		return "", errors.Wrap(err, "Can't parse url "+urlStr)
	}
	return url.String(), nil
}

//ErrWrongHTTPCall indicates failure due wrong http call
var ErrWrongHTTPCall = errors.New("Wrong http call")

//ValidateResponse returns error if code is not in [200, 299].
//A 400 maps to ErrWrongHTTPCall so callers can skip retries.
func ValidateResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}
	bodyBytes, _ := ioutil.ReadAll(io.LimitReader(resp.Body, 100))
	msg := fmt.Sprintf("Wrong response code from server. Code: %d\n%s",
		resp.StatusCode, string(bodyBytes))
	if resp.StatusCode == 400 {
		return errors.Wrap(ErrWrongHTTPCall, msg)
	}
	return errors.New(msg)
}

//URLToLog removes pass from URL
func URLToLog(link string) string {
	u, err := url.Parse(link)
	if err == nil {
		if u.User != nil {
			u.User = url.UserPassword(u.User.Username(), "xxxx")
		}
		return u.String()
	}
	return link
}
