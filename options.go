/*
   Copyright 2020 Joseph Cumines

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package yappla

import (
	"github.com/hashicorp/go-hclog"
	"go.opentelemetry.io/otel/trace"
)

// Option configures a Planner at construction time, mirroring the functional
// option pattern the teacher package uses for Plan configuration.
type Option func(*Planner)

// WithLogger sets the structured logger the Planner uses for search
// diagnostics. The default is hclog.NewNullLogger(), matching the quiet
// default (verbosity_level 0) of the original engine.
func WithLogger(logger hclog.Logger) Option {
	return func(p *Planner) { p.logger = logger }
}

// WithMaxIterations overrides the default iteration cap of 10000 (spec
// §4.6).
func WithMaxIterations(n int) Option {
	return func(p *Planner) { p.maxIterations = n }
}

// WithTracer sets the OpenTelemetry tracer used to span each Plan call. The
// default is the global no-op tracer provider's tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(p *Planner) { p.tracer = tracer }
}
