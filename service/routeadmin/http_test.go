// Copyright (c) 2024 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package routeadmin

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uber/streamroute/common/log/testlogger"
	"github.com/uber/streamroute/common/types"
)

func newTestServer(t *testing.T) (*Server, *MockHandler) {
	controller := gomock.NewController(t)
	handler := NewMockHandler(controller)
	server, err := NewServer("127.0.0.1:0", handler, time.Second, testlogger.New(t))
	require.NoError(t, err)
	t.Cleanup(func() { server.listener.Close() })
	return server, handler
}

func serve(t *testing.T, server *Server, path string, body string, requestID string) *Response {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	if requestID != "" {
		req.Header.Set(RequestIDHeader, requestID)
	}
	recorder := httptest.NewRecorder()
	server.router.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, resp.RequestID, recorder.Header().Get(RequestIDHeader))
	return &resp
}

func TestServeAddChannel(t *testing.T) {
	server, handler := newTestServer(t)
	handler.EXPECT().AddChannel(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ interface{}, request *AddChannelRequest) (*AddChannelResponse, error) {
			assert.Equal(t, "bkmonitor", request.Metadata.PlatName)
			assert.Equal(t, "admin", request.Operation.OperatorName)
			require.Len(t, request.Channels, 1)
			assert.Equal(t, uint32(1025), request.Channels[0].StreamTo.StreamToID)
			return &AddChannelResponse{ChannelID: 1572865}, nil
		})

	body := `{
		"metadata": {"plat_name": "bkmonitor"},
		"operation": {"operator_name": "admin"},
		"route": [{"name": "r1", "stream_to": {"stream_to_id": 1025, "kafka": {"topic_name": "t"}}}]
	}`
	resp := serve(t, server, "/api/v1/channel/add", body, "req-1")
	assert.True(t, resp.Result)
	assert.Equal(t, types.CodeSuccess, resp.Code)
	assert.Equal(t, "req-1", resp.RequestID)
	assert.Equal(t, map[string]interface{}{"channel_id": float64(1572865)}, resp.Data)
}

func TestServeErrorEnvelope(t *testing.T) {
	server, handler := newTestServer(t)
	handler.EXPECT().DeleteStreamTo(gomock.Any(), gomock.Any()).
		Return(&types.AccessDeniedError{Message: "not yours"})

	resp := serve(t, server, "/api/v1/streamto/delete", `{"condition": {"stream_to_id": 1025, "plat_name": "gse"}}`, "")
	assert.False(t, resp.Result)
	assert.Equal(t, types.CodeAccessDenied, resp.Code)
	assert.Equal(t, "not yours", resp.Message)
	assert.NotEmpty(t, resp.RequestID)
}

func TestServeRejectsMalformedBody(t *testing.T) {
	server, _ := newTestServer(t)

	resp := serve(t, server, "/api/v1/channel/update", `{"condition":`, "")
	assert.False(t, resp.Result)
	assert.Equal(t, types.CodeBadRequest, resp.Code)

	resp = serve(t, server, "/api/v1/streamto/add", `{"stream_to": {"report_mode": "kafka", "redis": {}}}`, "")
	assert.Equal(t, types.CodeBadRequest, resp.Code)
	assert.True(t, strings.Contains(resp.Message, "report_mode"))
}

func TestServerLifecycle(t *testing.T) {
	server, handler := newTestServer(t)
	handler.EXPECT().RebuildIndices(gomock.Any()).Return(&RebuildIndicesResponse{Channels: 1}, nil)
	server.Start()
	defer server.Stop()

	httpResp, err := http.Post("http://"+server.Addr()+"/api/v1/index/rebuild", "application/json", nil)
	require.NoError(t, err)
	defer httpResp.Body.Close()

	var resp Response
	require.NoError(t, json.NewDecoder(httpResp.Body).Decode(&resp))
	assert.True(t, resp.Result)
}
