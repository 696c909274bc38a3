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

package telemetry

import (
	"context"
	"os"
	"strings"

	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	semconv "go.opentelemetry.io/otel/semconv/v1.36.0"
)

// Message content is not logged by default. Set the following env variable to enable logging of prompt/response content.
// OTEL_INSTRUMENTATION_GENAI_CAPTURE_MESSAGE_CONTENT=true
var elideMessageContent = !isEnvVarTrue("OTEL_INSTRUMENTATION_GENAI_CAPTURE_MESSAGE_CONTENT")

const elidedContent = "<elided>"

// guessedGenAISystem is the AI system we are using.
var guessedGenAISystem = guessAISystem()

var logger = global.GetLoggerProvider().Logger(
	tracerName,
	log.WithSchemaURL(semconv.SchemaURL),
)

// LogRequest logs the prompts sent to the model, the system message and the
// user message, as separate events.
// Semconv reference: https://github.com/open-telemetry/semantic-conventions/blob/v1.36.0/docs/gen-ai/gen-ai-events.md.
func LogRequest(ctx context.Context, systemPrompt, userPrompt string) {
	logMessage(ctx, "gen_ai.system.message", systemPrompt)
	logMessage(ctx, "gen_ai.user.message", userPrompt)
}

// LogResponse logs the inference result.
// Semconv reference: https://github.com/open-telemetry/semantic-conventions/blob/v1.36.0/docs/gen-ai/gen-ai-events.md#event-gen_aichoice.
func LogResponse(ctx context.Context, response string, err error) {
	record := log.Record{}
	record.SetEventName("gen_ai.choice")

	finishReason := "stop"
	if err != nil {
		finishReason = "error"
	}
	record.SetBody(log.MapValue(
		log.Int("index", 0),
		log.KeyValue{Key: "content", Value: messageContent(response)},
		log.String("finish_reason", finishReason),
	))
	record.AddAttributes(aiSystemAttribute())

	logger.Emit(ctx, record)
}

func logMessage(ctx context.Context, eventName, content string) {
	record := log.Record{}
	record.SetEventName(eventName)
	record.SetBody(log.MapValue(
		log.KeyValue{Key: "content", Value: messageContent(content)},
	))
	record.AddAttributes(aiSystemAttribute())

	logger.Emit(ctx, record)
}

func messageContent(content string) log.Value {
	if elideMessageContent {
		return log.StringValue(elidedContent)
	}
	return log.StringValue(content)
}

func isEnvVarTrue(name string) bool {
	val, ok := os.LookupEnv(name)
	if !ok {
		return false
	}
	val = strings.ToLower(val)
	return val == "true" || val == "1"
}

func guessAISystem() string {
	if isEnvVarTrue("GOOGLE_GENAI_USE_VERTEXAI") {
		return semconv.GenAISystemGCPVertexAI.Value.AsString()
	}
	return semconv.GenAISystemGCPGenAI.Value.AsString()
}

func aiSystemAttribute() log.KeyValue {
	return log.String(string(semconv.GenAISystemKey), guessedGenAISystem)
}
