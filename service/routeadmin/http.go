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
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/atomic"

	"github.com/uber/streamroute/common"
	"github.com/uber/streamroute/common/log"
	"github.com/uber/streamroute/common/log/tag"
	"github.com/uber/streamroute/common/types"
)

const (
	// RequestIDHeader carries the caller supplied request id
	RequestIDHeader = "X-Bkapi-Request-Id"

	maxRequestBytes = 4 << 20
	shutdownTimeout = 5 * time.Second
)

type (
	// Server exposes a Handler over HTTP with JSON bodies
	Server struct {
		status         *atomic.Int32
		handler        Handler
		logger         log.Logger
		router         *httprouter.Router
		httpServer     *http.Server
		listener       net.Listener
		requestTimeout time.Duration
	}

	endpoint func(ctx context.Context, body []byte) (interface{}, error)
)

var _ common.Daemon = (*Server)(nil)

// NewServer binds the listen address and routes every management operation
func NewServer(address string, handler Handler, requestTimeout time.Duration, logger log.Logger) (*Server, error) {
	lis, err := net.Listen("tcp", address)
	if err != nil {
		return nil, err
	}
	s := &Server{
		status:         atomic.NewInt32(common.DaemonStatusInitialized),
		handler:        handler,
		logger:         logger.WithTags(tag.Component(tag.ComponentRouteAdmin), tag.Address(lis.Addr().String())),
		listener:       lis,
		requestTimeout: requestTimeout,
	}
	s.router = s.initRouter()
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: requestTimeout,
	}
	return s, nil
}

// Addr is the bound listen address
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

func (s *Server) initRouter() *httprouter.Router {
	router := httprouter.New()
	router.POST("/api/v1/channel/add", s.handle(s.addChannel))
	router.POST("/api/v1/channel/update", s.handle(s.updateChannel))
	router.POST("/api/v1/channel/delete", s.handle(s.deleteChannel))
	router.POST("/api/v1/channel/query", s.handle(s.queryChannel))
	router.POST("/api/v1/channel/index/query", s.handle(s.queryChannelIDs))
	router.POST("/api/v1/streamto/add", s.handle(s.addStreamTo))
	router.POST("/api/v1/streamto/update", s.handle(s.updateStreamTo))
	router.POST("/api/v1/streamto/delete", s.handle(s.deleteStreamTo))
	router.POST("/api/v1/streamto/query", s.handle(s.queryStreamTo))
	router.POST("/api/v1/streamto/index/query", s.handle(s.queryStreamToIDs))
	router.POST("/api/v1/index/rebuild", s.handle(s.rebuildIndices))
	return router
}

// Start serves requests until Stop
func (s *Server) Start() {
	if !s.status.CompareAndSwap(common.DaemonStatusInitialized, common.DaemonStatusStarted) {
		return
	}
	go func() {
		if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("route admin server stopped serving", tag.Error(err))
		}
	}()
	s.logger.Info("route admin server started", tag.Lifecycle(tag.LifeCycleStarted))
}

// Stop drains in-flight requests
func (s *Server) Stop() {
	if !s.status.CompareAndSwap(common.DaemonStatusStarted, common.DaemonStatusStopped) {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Warn("route admin server shutdown timed out", tag.Error(err))
	}
	s.logger.Info("route admin server stopped", tag.Lifecycle(tag.LifeCycleStopped))
}

func (s *Server) handle(fn endpoint) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		logger := s.logger.WithTags(tag.RequestID(requestID), tag.Method(r.URL.Path))

		body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
		if err != nil {
			writeResponse(w, logger, NewResponse(requestID, nil, &types.BadRequestError{Message: "failed to read request body"}))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
		defer cancel()
		data, err := fn(ctx, body)
		writeResponse(w, logger, NewResponse(requestID, data, err))
	}
}

func writeResponse(w http.ResponseWriter, logger log.Logger, resp *Response) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(RequestIDHeader, resp.RequestID)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Warn("failed to write response", tag.Error(err))
	}
}

func decode(body []byte, v interface{}) error {
	if err := json.Unmarshal(body, v); err != nil {
		var badRequest *types.BadRequestError
		if errors.As(err, &badRequest) {
			return badRequest
		}
		return &types.BadRequestError{Message: "request is not valid json: " + err.Error()}
	}
	return nil
}

func (s *Server) addChannel(ctx context.Context, body []byte) (interface{}, error) {
	var request AddChannelRequest
	if err := decode(body, &request); err != nil {
		return nil, err
	}
	return s.handler.AddChannel(ctx, &request)
}

func (s *Server) updateChannel(ctx context.Context, body []byte) (interface{}, error) {
	var request UpdateChannelRequest
	if err := decode(body, &request); err != nil {
		return nil, err
	}
	return nil, s.handler.UpdateChannel(ctx, &request)
}

func (s *Server) deleteChannel(ctx context.Context, body []byte) (interface{}, error) {
	var request DeleteChannelRequest
	if err := decode(body, &request); err != nil {
		return nil, err
	}
	return nil, s.handler.DeleteChannel(ctx, &request)
}

func (s *Server) queryChannel(ctx context.Context, body []byte) (interface{}, error) {
	var request QueryChannelRequest
	if err := decode(body, &request); err != nil {
		return nil, err
	}
	return s.handler.QueryChannel(ctx, &request)
}

func (s *Server) queryChannelIDs(ctx context.Context, body []byte) (interface{}, error) {
	var request QueryIndexRequest
	if err := decode(body, &request); err != nil {
		return nil, err
	}
	return s.handler.QueryChannelIDs(ctx, &request)
}

func (s *Server) addStreamTo(ctx context.Context, body []byte) (interface{}, error) {
	var request AddStreamToRequest
	if err := decode(body, &request); err != nil {
		return nil, err
	}
	return s.handler.AddStreamTo(ctx, &request)
}

func (s *Server) updateStreamTo(ctx context.Context, body []byte) (interface{}, error) {
	var request UpdateStreamToRequest
	if err := decode(body, &request); err != nil {
		return nil, err
	}
	return nil, s.handler.UpdateStreamTo(ctx, &request)
}

func (s *Server) deleteStreamTo(ctx context.Context, body []byte) (interface{}, error) {
	var request DeleteStreamToRequest
	if err := decode(body, &request); err != nil {
		return nil, err
	}
	return nil, s.handler.DeleteStreamTo(ctx, &request)
}

func (s *Server) queryStreamTo(ctx context.Context, body []byte) (interface{}, error) {
	var request QueryStreamToRequest
	if err := decode(body, &request); err != nil {
		return nil, err
	}
	return s.handler.QueryStreamTo(ctx, &request)
}

func (s *Server) queryStreamToIDs(ctx context.Context, body []byte) (interface{}, error) {
	var request QueryIndexRequest
	if err := decode(body, &request); err != nil {
		return nil, err
	}
	return s.handler.QueryStreamToIDs(ctx, &request)
}

func (s *Server) rebuildIndices(ctx context.Context, _ []byte) (interface{}, error) {
	return s.handler.RebuildIndices(ctx)
}
