// Package profile provides optional runtime profiling for tagl.
//
// # Overview
//
// This package integrates [github.com/pkg/profile] behind the "pprof" build
// tag. Without the tag, [Modes] is empty and [Profiler.Start] is a no-op.
//
//	go build -tags pprof -o tagl .
//
// # Modes
//
// The following modes are supported when built with the pprof tag:
//
//   - allocs:    memory allocation profiling (all allocations)
//   - block:     block (synchronization) profiling
//   - clock:     wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: goroutine profiling
//   - heap:      heap profiling (live allocations)
//   - mem:       general memory profiling
//   - mutex:     mutex contention profiling
//   - thread:    thread creation profiling
//   - trace:     execution trace
//
// # Usage
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/profiles"}
//	defer p.Start().Stop()
//
// From the command line:
//
//	tagl --pprof-mode=cpu page.html
//	tagl --pprof-mode=heap --pprof-dir=./profiles page.html
//
// The default output directory is the pprof subdirectory of the user cache
// directory, e.g. $XDG_CACHE_HOME/tagl/pprof.
//
// Analyze results with go tool pprof:
//
//	go tool pprof -http=: ~/.cache/tagl/pprof/cpu.pprof
//
// Importing this package with the pprof tag also registers the
// [net/http/pprof] handlers on [net/http.DefaultServeMux].
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
