package adapter

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func responseWith(t *testing.T, status int, body string) *resty.Response {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	resp, err := resty.New().R().Get(srv.URL)
	require.NoError(t, err)
	return resp
}

func TestMapHTTPError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    error
		wantMsg string
	}{
		{name: "ok", status: http.StatusOK},
		{name: "accepted", status: http.StatusAccepted},
		{name: "conflict", status: http.StatusConflict, body: "account already exists\n", want: ErrConflict, wantMsg: "conflict: account already exists"},
		{name: "gone", status: http.StatusGone, body: "invalid confirmation code", want: ErrGone},
		{name: "empty body", status: http.StatusForbidden, want: ErrForbidden, wantMsg: "forbidden: Forbidden"},
		{name: "unmapped", status: http.StatusTeapot, body: "short and stout", wantMsg: "http 418: short and stout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapHTTPError(responseWith(t, tt.status, tt.body))

			if tt.want == nil && tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
			if tt.wantMsg != "" {
				assert.EqualError(t, err, tt.wantMsg)
			}
		})
	}
}

func TestMapHTTPError_TruncatesBody(t *testing.T) {
	err := mapHTTPError(responseWith(t, http.StatusBadRequest, strings.Repeat("x", 1000)))

	require.ErrorIs(t, err, ErrBadRequest)
	assert.Len(t, err.Error(), len("bad request: ")+maxErrorBody+len("..."))
}
