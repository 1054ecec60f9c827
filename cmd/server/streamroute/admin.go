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

package streamroute

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/uber/streamroute/common/types"
	"github.com/uber/streamroute/service/routeadmin"
)

const defaultAdminTimeout = 10 * time.Second

type (
	adminClient struct {
		address string
		client  *http.Client
	}

	// adminResponse mirrors routeadmin.Response with the payload left undecoded
	adminResponse struct {
		Result    bool            `json:"result"`
		Code      int             `json:"code"`
		Message   string          `json:"message"`
		Data      json.RawMessage `json:"data"`
		RequestID string          `json:"request_id"`
	}

	// AdminError is a failed envelope
	AdminError struct {
		Code      int
		Message   string
		RequestID string
	}
)

var output io.Writer = os.Stdout

func (e *AdminError) Error() string {
	return fmt.Sprintf("code %d: %s (request %s)", e.Code, e.Message, e.RequestID)
}

func newAdminClient(c *cli.Context) *adminClient {
	address := c.String(flagAddress)
	if !strings.HasPrefix(address, "http://") && !strings.HasPrefix(address, "https://") {
		address = "http://" + address
	}
	return &adminClient{
		address: strings.TrimSuffix(address, "/"),
		client:  &http.Client{Timeout: c.Duration(flagTimeout)},
	}
}

// call posts request to path and decodes the data of a successful envelope into out
func (a *adminClient) call(ctx context.Context, path string, request interface{}, out interface{}) error {
	body, err := json.Marshal(request)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.address+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(routeadmin.RequestIDHeader, uuid.New().String())

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var envelope adminResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("unexpected response with status %d: %w", resp.StatusCode, err)
	}
	if !envelope.Result {
		return &AdminError{Code: envelope.Code, Message: envelope.Message, RequestID: envelope.RequestID}
	}
	if out == nil || len(envelope.Data) == 0 {
		return nil
	}
	return json.Unmarshal(envelope.Data, out)
}

func queryChannels(c *cli.Context) error {
	request := &routeadmin.QueryChannelRequest{
		Condition: routeadmin.ChannelCondition{
			ChannelID: uint32(c.Uint(flagChannelID)),
			PlatName:  c.String(flagPlatName),
		},
	}
	var configs []*types.ChannelConfig
	if err := callAdmin(c, "/api/v1/channel/query", request, &configs); err != nil {
		return err
	}

	table := newTable("CHANNEL ID", "PLATFORM", "ODM", "BIZ ID", "ROUTES", "FILTERS")
	for _, config := range configs {
		odm, biz := labelColumns(config.Metadata.Label)
		table.Append([]string{
			strconv.FormatUint(uint64(config.Metadata.ChannelID), 10),
			config.Metadata.PlatName,
			odm,
			biz,
			routeColumn(config.Channels),
			strconv.Itoa(len(config.Filters)),
		})
	}
	table.Render()
	return nil
}

func queryStreamTos(c *cli.Context) error {
	request := &routeadmin.QueryStreamToRequest{
		Condition: routeadmin.StreamToCondition{
			StreamToID: uint32(c.Uint(flagStreamToID)),
			PlatName:   c.String(flagPlatName),
		},
	}
	var configs []*types.StreamToClusterConfig
	if err := callAdmin(c, "/api/v1/streamto/query", request, &configs); err != nil {
		return err
	}

	table := newTable("STREAM TO ID", "PLATFORM", "NAME", "REPORT MODE", "ODM", "BIZ ID")
	for _, config := range configs {
		odm, biz := labelColumns(config.Metadata.Label)
		table.Append([]string{
			strconv.FormatUint(uint64(config.Metadata.StreamToID), 10),
			config.Metadata.PlatName,
			config.StreamTo.Name,
			string(config.StreamTo.ReportMode()),
			odm,
			biz,
		})
	}
	table.Render()
	return nil
}

func queryChannelIDs(c *cli.Context) error {
	return queryIDs(c, "/api/v1/channel/index/query", "CHANNEL ID")
}

func queryStreamToIDs(c *cli.Context) error {
	return queryIDs(c, "/api/v1/streamto/index/query", "STREAM TO ID")
}

func queryIDs(c *cli.Context, path string, header string) error {
	request := &routeadmin.QueryIndexRequest{Condition: indexCondition(c)}
	var resp routeadmin.QueryIndexResponse
	if err := callAdmin(c, path, request, &resp); err != nil {
		return err
	}
	table := newTable(header)
	for _, id := range resp.IDs {
		table.Append([]string{strconv.FormatUint(uint64(id), 10)})
	}
	table.Render()
	return nil
}

func indexCondition(c *cli.Context) routeadmin.IndexCondition {
	condition := routeadmin.IndexCondition{
		PlatName:   c.String(flagPlatName),
		Odm:        c.String(flagOdm),
		Type:       c.String(flagType),
		StreamToID: uint32(c.Uint(flagStreamToID)),
	}
	if biz := c.Int64(flagBizID); biz >= 0 {
		condition.BizID = &biz
	}
	return condition
}

func rebuildIndices(c *cli.Context) error {
	var resp routeadmin.RebuildIndicesResponse
	if err := callAdmin(c, "/api/v1/index/rebuild", struct{}{}, &resp); err != nil {
		return err
	}
	fmt.Fprintf(output, "rebuilt indices of %d channels and %d stream-tos\n", resp.Channels, resp.StreamTos)
	if resp.Failures > 0 {
		fmt.Fprintln(output, color.YellowString("%d index writes failed, run rebuild again once the tree is healthy", resp.Failures))
	}
	return nil
}

func callAdmin(c *cli.Context, path string, request interface{}, out interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.Duration(flagTimeout))
	defer cancel()
	if err := newAdminClient(c).call(ctx, path, request, out); err != nil {
		return fmt.Errorf("%s %w", color.RedString("Error:"), err)
	}
	return nil
}

func newTable(headers ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(output)
	table.SetBorder(false)
	table.SetColumnSeparator("|")
	table.SetHeaderLine(false)
	table.SetHeader(headers)
	return table
}

func labelColumns(label *types.Label) (odm string, biz string) {
	if label == nil {
		return "", ""
	}
	if label.BizID != nil {
		biz = strconv.FormatInt(*label.BizID, 10)
	}
	return label.Odm, biz
}

func routeColumn(routes []*types.Channel) string {
	names := make([]string, 0, len(routes))
	for _, route := range routes {
		names = append(names, fmt.Sprintf("%s->%d", route.Name, route.StreamTo.StreamToID))
	}
	return strings.Join(names, ",")
}
