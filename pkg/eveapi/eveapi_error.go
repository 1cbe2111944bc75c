package eveapi

import (
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
)

var (
	ErrEveAPI        = errors.New("eve api")
	ErrTransport     = errors.New("eve api transport")
	ErrEmptyResponse = errors.New("eve api returned an empty response")
)

// StatusError describes a non-2xx answer that carried no body to parse.
type StatusError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("(HTTP Status: %d) %s: %s", e.StatusCode, e.URL, e.Status)
}

func ToErrorFromResponse(resp *resty.Response) error {
	statusErr := &StatusError{
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
	}

	if resp.Request != nil {
		statusErr.URL = resp.Request.URL
	}

	return errors.Join(ErrEveAPI, statusErr)
}
