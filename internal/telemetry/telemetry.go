// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package telemetry sets up the open telemetry tracing for benchmark runs.
package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const tracerName = "usafacts.usabench"

type tracerProviderHolder struct {
	tp trace.TracerProvider
}

type tracerProviderConfig struct {
	spanProcessors []sdktrace.SpanProcessor
	mu             *sync.RWMutex
}

var (
	once        sync.Once
	localTracer tracerProviderHolder
	limits      = sdktrace.SpanLimits{
		AttributeValueLengthLimit:   -1,
		AttributeCountLimit:         -1,
		EventCountLimit:             -1,
		LinkCountLimit:              -1,
		AttributePerEventCountLimit: -1,
		AttributePerLinkCountLimit:  -1,
	}
	localTracerConfig = tracerProviderConfig{
		spanProcessors: []sdktrace.SpanProcessor{},
		mu:             &sync.RWMutex{},
	}
)

// AddSpanProcessor adds a span processor to the local tracer config. Call
// it before the first span is started.
func AddSpanProcessor(processor sdktrace.SpanProcessor) {
	localTracerConfig.mu.Lock()
	defer localTracerConfig.mu.Unlock()
	localTracerConfig.spanProcessors = append(localTracerConfig.spanProcessors, processor)
}

// RegisterTelemetry sets up the local tracer that will be used to emit traces.
// We use a local tracer to respect the global tracer configurations.
func RegisterTelemetry() {
	once.Do(func() {
		traceProvider := sdktrace.NewTracerProvider(
			sdktrace.WithRawSpanLimits(limits),
		)
		localTracerConfig.mu.RLock()
		spanProcessors := localTracerConfig.spanProcessors
		localTracerConfig.mu.RUnlock()
		for _, processor := range spanProcessors {
			traceProvider.RegisterSpanProcessor(processor)
		}
		localTracer = tracerProviderHolder{tp: traceProvider}
	})
}

// If the global tracer is not set, the default NoopTracerProvider is used,
// meaning spans are not recorded or exported. The local tracer carries all
// registered span processors.
func getTracers() []trace.Tracer {
	if localTracer.tp == nil {
		RegisterTelemetry()
	}
	return []trace.Tracer{
		localTracer.tp.Tracer(tracerName),
		otel.GetTracerProvider().Tracer(tracerName),
	}
}

// StartTrace returns spans to start emitting events, one from the global
// tracer and one from the local.
func StartTrace(ctx context.Context, traceName string) []trace.Span {
	tracers := getTracers()
	spans := make([]trace.Span, len(tracers))
	for i, tracer := range tracers {
		_, span := tracer.Start(ctx, traceName)
		spans[i] = span
	}
	return spans
}

// TraceSampleEvaluation fills the evaluate_sample event details and ends
// the spans.
func TraceSampleEvaluation(spans []trace.Span, sampleID, kind, difficulty string, passed bool, score float64) {
	for _, span := range spans {
		span.SetAttributes(
			attribute.String("usabench.sample_id", sampleID),
			attribute.String("usabench.task_kind", kind),
			attribute.String("usabench.difficulty", difficulty),
			attribute.Bool("usabench.passed", passed),
			attribute.Float64("usabench.score", score),
		)
		span.End()
	}
}
