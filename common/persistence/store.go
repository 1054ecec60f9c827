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

package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/multierr"

	"github.com/uber/streamroute/common"
	"github.com/uber/streamroute/common/coordination"
	"github.com/uber/streamroute/common/log"
	"github.com/uber/streamroute/common/log/tag"
	"github.com/uber/streamroute/common/routeid"
)

type (
	metadataStoreImpl struct {
		client coordination.Client
		paths  Paths
		clock  clockwork.Clock
		logger log.Logger
	}

	// Option configures the metadata store
	Option func(*metadataStoreImpl)
)

var _ MetadataStore = (*metadataStoreImpl)(nil)

// WithClock overrides the clock used for node timestamps
func WithClock(clock clockwork.Clock) Option {
	return func(s *metadataStoreImpl) {
		s.clock = clock
	}
}

// NewMetadataStore returns a MetadataStore backed by a coordination client
func NewMetadataStore(client coordination.Client, paths Paths, logger log.Logger, opts ...Option) MetadataStore {
	s := &metadataStoreImpl{
		client: client,
		paths:  paths,
		clock:  clockwork.NewRealClock(),
		logger: logger.WithTags(tag.Component(tag.ComponentMetadataStore)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *metadataStoreImpl) Paths() Paths {
	return s.paths
}

func (s *metadataStoreImpl) checkConnected() error {
	if !s.client.Connected() {
		return errNotConnected
	}
	return nil
}

func (s *metadataStoreImpl) Init(ctx context.Context) error {
	if err := s.checkConnected(); err != nil {
		return err
	}
	for _, p := range []string{
		s.paths.ChannelRoot(),
		s.paths.StreamToRoot(),
		s.paths.ChannelOriginRoot(),
		s.paths.StreamToOriginRoot(),
		s.paths.PlatRegistryRoot(),
	} {
		if err := s.CreateNode(ctx, p, []byte(common.PlaceholderValue)); err != nil {
			return err
		}
	}
	for _, plat := range routeid.SupportedPlatforms() {
		platID, _ := routeid.PlatformID(plat)
		value := []byte(strconv.FormatUint(uint64(platID), 10))
		if err := s.CreateNode(ctx, s.paths.PlatRegistry(plat), value); err != nil {
			return err
		}
	}
	s.logger.Info("metadata store initialized")
	return nil
}

func (s *metadataStoreImpl) CreateNode(ctx context.Context, path string, value []byte) error {
	if err := s.checkConnected(); err != nil {
		return err
	}
	segments := coordination.SplitPath(path)
	current := ""
	for i, segment := range segments {
		current += "/" + segment
		exists, err := s.client.Exists(ctx, current, nil)
		if err != nil {
			return convertError("exists", current, err)
		}
		if exists {
			continue
		}
		data := []byte(common.PlaceholderValue)
		if i == len(segments)-1 {
			data = value
		}
		if err := s.client.Create(ctx, current, data); err != nil && !errors.Is(err, coordination.ErrNodeExists) {
			s.logger.Error("failed to create node", tag.StoreOperation(tag.StoreOperationCreateNode), tag.ZKPath(current), tag.Error(err))
			return convertError("create", current, err)
		}
	}
	return nil
}

// setOrCreate overwrites an existing node and falls back to creating it with its ancestors
func (s *metadataStoreImpl) setOrCreate(ctx context.Context, path string, value []byte) error {
	err := s.client.Set(ctx, path, value)
	if err == nil {
		return nil
	}
	if !coordination.IsNodeNotFound(err) {
		return convertError("set", path, err)
	}
	return s.CreateNode(ctx, path, value)
}

func (s *metadataStoreImpl) writeJSON(ctx context.Context, path string, v interface{}, create bool) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if create {
		return s.CreateNode(ctx, path, data)
	}
	return s.setOrCreate(ctx, path, data)
}

func (s *metadataStoreImpl) readJSON(ctx context.Context, path string, v interface{}) error {
	data, err := s.client.Get(ctx, path, nil)
	if err != nil {
		return convertError("get", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &CorruptedDocumentError{Path: path, Cause: err}
	}
	return nil
}

// touch stamps a document root last so watchers observe a completed write
func (s *metadataStoreImpl) touch(ctx context.Context, path string) error {
	return s.setOrCreate(ctx, path, []byte(s.clock.Now().UTC().Format(time.RFC3339)))
}

func (s *metadataStoreImpl) exists(ctx context.Context, path string) (bool, error) {
	if err := s.checkConnected(); err != nil {
		return false, err
	}
	exists, err := s.client.Exists(ctx, path, nil)
	if err != nil {
		return false, convertError("exists", path, err)
	}
	return exists, nil
}

// deleteRecursive removes a subtree depth first. Missing nodes count as deleted.
func (s *metadataStoreImpl) deleteRecursive(ctx context.Context, path string) error {
	children, err := s.client.Children(ctx, path, nil)
	if err != nil {
		if coordination.IsNodeNotFound(err) {
			return nil
		}
		return convertError("children", path, err)
	}
	for _, child := range children {
		if err := s.deleteRecursive(ctx, coordination.JoinPath(path, child)); err != nil {
			return err
		}
	}
	if err := s.client.Delete(ctx, path); err != nil && !coordination.IsNodeNotFound(err) {
		return convertError("delete", path, err)
	}
	return nil
}

// deleteLeaf removes a single node, treating absence as success
func (s *metadataStoreImpl) deleteLeaf(ctx context.Context, path string) error {
	err := s.client.Delete(ctx, path)
	if err == nil {
		return nil
	}
	if coordination.IsNodeNotFound(err) {
		s.logger.Info("node already deleted", tag.ZKPath(path))
		return nil
	}
	return convertError("delete", path, err)
}

func (s *metadataStoreImpl) numericChildren(ctx context.Context, path string) ([]uint32, error) {
	if err := s.checkConnected(); err != nil {
		return nil, err
	}
	children, err := s.client.Children(ctx, path, nil)
	if err != nil {
		if coordination.IsNodeNotFound(err) {
			return nil, nil
		}
		return nil, convertError("children", path, err)
	}
	ids := make([]uint32, 0, len(children))
	for _, child := range children {
		if v, ok := ParseID(child); ok {
			ids = append(ids, v)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *metadataStoreImpl) nextOrigin(ctx context.Context, root string, platName string) (uint32, error) {
	if err := s.checkConnected(); err != nil {
		return 0, err
	}
	created, err := s.client.CreateSequential(ctx, root+"/", []byte(platName))
	if errors.Is(err, coordination.ErrNoParent) || coordination.IsNodeNotFound(err) {
		if err := s.CreateNode(ctx, root, []byte(common.PlaceholderValue)); err != nil {
			return 0, err
		}
		created, err = s.client.CreateSequential(ctx, root+"/", []byte(platName))
	}
	if err != nil {
		s.logger.Error("failed to create sequential node", tag.StoreOperation(tag.StoreOperationGenerateID), tag.ZKPath(root), tag.Error(err))
		return 0, convertError("create sequential", root, err)
	}
	origin, ok := ParseID(coordination.BaseName(created))
	if !ok {
		return 0, &CorruptedDocumentError{Path: created, Cause: errors.New("sequential node name is not numeric")}
	}
	return origin, nil
}

func (s *metadataStoreImpl) NextChannelOrigin(ctx context.Context, platName string) (uint32, error) {
	return s.nextOrigin(ctx, s.paths.ChannelOriginRoot(), platName)
}

func (s *metadataStoreImpl) NextStreamToOrigin(ctx context.Context, platName string) (uint32, error) {
	return s.nextOrigin(ctx, s.paths.StreamToOriginRoot(), platName)
}

func (s *metadataStoreImpl) ReadPlatNumber(ctx context.Context, platName string) (string, error) {
	if err := s.checkConnected(); err != nil {
		return "", err
	}
	path := s.paths.PlatRegistry(platName)
	data, err := s.client.Get(ctx, path, nil)
	if err != nil {
		if coordination.IsNodeNotFound(err) {
			return "", notExists("plat_name %s is not registered", platName)
		}
		return "", convertError("get", path, err)
	}
	return string(data), nil
}

// joinIndexErrors logs every failure and returns them combined
func (s *metadataStoreImpl) joinIndexErrors(operation tag.Tag, errs []error) error {
	combined := multierr.Combine(errs...)
	if combined != nil {
		s.logger.Warn("index maintenance incomplete", operation, tag.Counter(len(multierr.Errors(combined))), tag.Error(combined))
	}
	return combined
}
