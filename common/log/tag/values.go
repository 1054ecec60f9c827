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

package tag

// Pre-defined values for TagSysComponent
type component string

var (
	ComponentRouteCache     = component("route-cache")
	ComponentRouteLoader    = component("route-loader")
	ComponentMetadataStore  = component("metadata-store")
	ComponentAllocator      = component("id-allocator")
	ComponentRouteAdmin     = component("route-admin")
	ComponentFilterEngine   = component("filter-engine")
	ComponentCoordination   = component("coordination")
	ComponentKafkaValidator = component("kafka-validator")
)

// Pre-defined values for TagSysLifecycle
type lifecycle string

var (
	LifeCycleStarting         = lifecycle("Starting")
	LifeCycleStarted          = lifecycle("Started")
	LifeCycleStopping         = lifecycle("Stopping")
	LifeCycleStopped          = lifecycle("Stopped")
	LifeCycleStopTimedout     = lifecycle("StopTimedout")
	LifeCycleStartFailed      = lifecycle("StartFailed")
	LifeCycleStopFailed       = lifecycle("StopFailed")
	LifeCycleProcessingFailed = lifecycle("ProcessingFailed")
)

// Pre-defined values for TagSysStoreOperation
type storeOperation string

var (
	StoreOperationCreateNode           = storeOperation("create-node")
	StoreOperationReadChannelConfig    = storeOperation("read-channel-config")
	StoreOperationCreateChannelConfig  = storeOperation("create-channel-config")
	StoreOperationUpdateChannelConfig  = storeOperation("update-channel-config")
	StoreOperationDeleteChannelConfig  = storeOperation("delete-channel-config")
	StoreOperationCreateChannelIndex   = storeOperation("create-channel-index")
	StoreOperationDeleteChannelIndex   = storeOperation("delete-channel-index")
	StoreOperationReadStreamToConfig   = storeOperation("read-stream-to-config")
	StoreOperationCreateStreamToConfig = storeOperation("create-stream-to-config")
	StoreOperationUpdateStreamToConfig = storeOperation("update-stream-to-config")
	StoreOperationDeleteStreamToConfig = storeOperation("delete-stream-to-config")
	StoreOperationCreateStreamToIndex  = storeOperation("create-stream-to-index")
	StoreOperationDeleteStreamToIndex  = storeOperation("delete-stream-to-index")
	StoreOperationDeleteOriginID       = storeOperation("delete-origin-id")
	StoreOperationGenerateID           = storeOperation("generate-id")
	StoreOperationRebuildIndices       = storeOperation("rebuild-indices")
)

// Pre-defined values for TagSysOperationResult
type operationResult string

var (
	OperationFailed   = operationResult("OperationFailed")
	OperationStuck    = operationResult("OperationStuck")
	OperationCritical = operationResult("OperationCritical")
)
