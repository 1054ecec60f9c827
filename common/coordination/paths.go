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

package coordination

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
)

// JoinPath joins segments into an absolute node path
func JoinPath(segments ...string) string {
	p := path.Join(segments...)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// SplitPath returns the non-empty segments of a node path
func SplitPath(p string) []string {
	parts := strings.Split(p, "/")
	out := make([]string, 0, len(parts))
	for _, s := range parts {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ParentPath returns the parent of p, "/" for top level nodes
func ParentPath(p string) string {
	parent := path.Dir(strings.TrimSuffix(p, "/"))
	if parent == "." {
		return "/"
	}
	return parent
}

// BaseName returns the last segment of p
func BaseName(p string) string {
	return path.Base(p)
}

// IsNodeNotFound reports whether err means the node is absent
func IsNodeNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound)
}

// IsNotConnected reports whether err means the session is not established
func IsNotConnected(err error) bool {
	return errors.Is(err, ErrNotConnected)
}

// WaitForConnection blocks until the client reports a session or ctx is done
func WaitForConnection(ctx context.Context, client Client, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for !client.Connected() {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrNotConnected, ctx.Err())
		case <-ticker.C:
		}
	}
	return nil
}
