package testutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
)

type RequestOptions struct {
	headers map[string]string
	cookies []*http.Cookie
}

type RequestArgs struct {
	Router http.Handler
	Method string
	URL    string
	Body   io.Reader
}

func MakeRequest(args RequestArgs, opts ...func(*RequestOptions)) (*http.Response, error) {
	options := RequestOptions{
		headers: make(map[string]string),
		cookies: nil,
	}
	for _, opt := range opts {
		opt(&options)
	}

	request := httptest.NewRequest(args.Method, args.URL, args.Body)
	if len(options.headers) > 0 {
		for k, v := range options.headers {
			request.Header.Set(k, v)
		}
	}

	if options.cookies != nil {
		for _, cookie := range options.cookies {
			request.AddCookie(cookie)
		}
	}

	recorder := httptest.NewRecorder()

	args.Router.ServeHTTP(recorder, request)

	return recorder.Result(), nil
}

// MakeJSONRequest сериализует payload в JSON и выполняет запрос с нужным Content-Type.
func MakeJSONRequest(args RequestArgs, payload any, opts ...func(*RequestOptions)) (*http.Response, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %s", err.Error())
	}
	args.Body = bytes.NewReader(raw)
	opts = append(opts, WithHeader("Content-Type", "application/json"))
	return MakeRequest(args, opts...)
}

func WithHeader(name, value string) func(*RequestOptions) {
	return func(fn *RequestOptions) {
		fn.headers[name] = value
	}
}

func WithCookies(c []*http.Cookie) func(*RequestOptions) {
	return func(fn *RequestOptions) {
		fn.cookies = c
	}
}
