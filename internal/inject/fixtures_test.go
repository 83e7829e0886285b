// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

package inject

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// newTestContainer returns a container with logging disabled.
func newTestContainer(t *testing.T) *Container {
	t.Helper()
	return New(DefaultConfig(), zerolog.Nop())
}

// describe registers a type description and fails the test on error.
func describe[T any](t *testing.T, c *Container, members ...Member) {
	t.Helper()
	require.NoError(t, c.Describe(reflect.TypeFor[T](), members...))
}

type gear struct {
	teeth int
}

type widget struct {
	gear *gear
}

func newWidget(g *gear) *widget {
	return &widget{gear: g}
}

type engine interface {
	Start() string
}

type dieselEngine struct{ rpm int }

func (*dieselEngine) Start() string { return "diesel" }

type electricEngine struct{ kw int }

func (*electricEngine) Start() string { return "electric" }

// decorator wraps another engine, so its constructor would need itself.
type decorator struct {
	inner engine
}

func (d *decorator) Start() string {
	if d.inner == nil {
		return "plain"
	}
	return "decorated " + d.inner.Start()
}

func newDecorator(inner engine) *decorator { return &decorator{inner: inner} }

func newPlainDecorator() *decorator { return &decorator{} }

// scorer has constructors of different specificity.
type scorer struct {
	gear   *gear
	widget *widget
	size   int
	via    string
}

func newScorer1(g *gear) *scorer {
	return &scorer{gear: g, via: "one"}
}

func newScorer3(g *gear, w *widget, size int) *scorer {
	return &scorer{gear: g, widget: w, size: size, via: "three"}
}

// cycleA and cycleB need each other.
type cycleA struct{ b *cycleB }

type cycleB struct{ a *cycleA }

func newCycleA(b *cycleB) *cycleA { return &cycleA{b: b} }

func newCycleB(a *cycleA) *cycleB { return &cycleB{a: a} }

var errBroken = errors.New("broken part")

type broken struct{}

func newBroken() (*broken, error) { return nil, errBroken }

type panicky struct{}

func newPanicky() *panicky { panic("gear stripped") }

// assembly prefers a constructor needing a broken part.
type assembly struct{ via string }

func newAssemblyWithBroken(*broken, *gear) *assembly { return &assembly{via: "broken"} }

func newAssembly(*gear) *assembly { return &assembly{via: "gear"} }

// radio and car exercise injection methods.
type radio struct{ band string }

type car struct {
	engine engine
	radio  *radio
	calls  []string
}

func (c *car) InjectEngine(e engine) {
	c.engine = e
	c.calls = append(c.calls, "InjectEngine")
}

func (c *car) InjectRadio(r *radio) {
	c.radio = r
	c.calls = append(c.calls, "InjectRadio")
}

// Not injection methods: wrong arity, results or prefix.
func (c *car) InjectNothing() { c.calls = append(c.calls, "InjectNothing") }

func (c *car) InjectBoth(*radio, *gear) { c.calls = append(c.calls, "InjectBoth") }

func (c *car) InjectResult(*radio) error { return nil }

func (c *car) InjectVariadic(...*radio) { c.calls = append(c.calls, "InjectVariadic") }

func (c *car) SetRadio(*radio) { c.calls = append(c.calls, "SetRadio") }

type faultyCar struct{}

func (*faultyCar) InjectRadio(*radio) { panic("no antenna") }

// dashSwitch records which dashboard constructor ran and fails the first
// failures radio injections.
type dashSwitch struct {
	mu       sync.Mutex
	built    []string
	failures atomic.Int32
}

func (s *dashSwitch) record(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.built = append(s.built, name)
}

func (s *dashSwitch) constructors() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.built...)
}

type dashboard struct {
	gear  *gear
	radio *radio
	sw    *dashSwitch
}

func newFullDashboard(g *gear, sw *dashSwitch) *dashboard {
	sw.record("full")
	return &dashboard{gear: g, sw: sw}
}

func newBareDashboard(sw *dashSwitch) *dashboard {
	sw.record("bare")
	return &dashboard{sw: sw}
}

func (d *dashboard) InjectRadio(r *radio) {
	if d.sw.failures.Add(-1) >= 0 {
		panic("radio not ready")
	}
	d.radio = r
}

// model and its builder exercise the builder adapter.
type model struct {
	gear *gear
}

type buildCounter struct {
	n atomic.Int32
}

type modelBuilder struct {
	gear    *gear
	counter *buildCounter
}

func newModelBuilder(g *gear, counter *buildCounter) *modelBuilder {
	return &modelBuilder{gear: g, counter: counter}
}

func (b *modelBuilder) Build() (*model, error) {
	b.counter.n.Add(1)
	return &model{gear: b.gear}, nil
}

type failingBuilder struct{}

func (*failingBuilder) Build() (*model, error) { return nil, errBroken }

// cycleProduct is built by a builder that needs the product itself.
type cycleProduct struct{}

type cycleBuilder struct{ p *cycleProduct }

func newCycleBuilder(p *cycleProduct) *cycleBuilder { return &cycleBuilder{p: p} }

func (*cycleBuilder) Build() (*cycleProduct, error) { return &cycleProduct{}, nil }

// source is the watched type in monitor tests.
type source interface {
	Rows() int
}

type memSource struct{ rows int }

func (s *memSource) Rows() int { return s.rows }

type tableY struct{ src source }

func newTableY(src source) *tableY { return &tableY{src: src} }

type viewX struct{ y *tableY }

func newViewX(y *tableY) *viewX { return &viewX{y: y} }

type unrelatedZ struct{ g *gear }

func newUnrelatedZ(g *gear) *unrelatedZ { return &unrelatedZ{g: g} }

type sourceModelBuilder struct{ src source }

func newSourceModelBuilder(src source) *sourceModelBuilder {
	return &sourceModelBuilder{src: src}
}

func (b *sourceModelBuilder) Build() (*model, error) { return &model{}, nil }

// slow records how many times its constructor ran.
type slow struct{ id int32 }

var slowBuilds atomic.Int32

func newSlow() *slow {
	time.Sleep(2 * time.Millisecond)
	return &slow{id: slowBuilds.Add(1)}
}

// recorder is an Observer capturing every notification.
type recorder struct {
	mu       sync.Mutex
	events   []Event
	failures []error
}

func (r *recorder) Instantiated(ev Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

func (r *recorder) Failed(_ Key, err error) {
	r.mu.Lock()
	r.failures = append(r.failures, err)
	r.mu.Unlock()
}

func (r *recorder) methods() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, ev := range r.events {
		if ev.Method != "" {
			out = append(out, ev.Method)
		}
	}
	return out
}
