// Package benchmarks compares volt's compiled RadixRouter against the
// routers of gin, fiber, and echo, grounded on
// bolt/benchmarks/benchmark_router_test.go's router-only scenarios (no
// wildcard scenario here, since spec's route grammar has no "*path"
// catch-all, unlike bolt's).
package benchmarks

import (
	"testing"

	"github.com/voltweb/volt"
	"github.com/voltweb/volt/engine"
)

type simpleResponse struct {
	Message string `json:"message"`
}

func pingHandler(ctx *volt.Context, req *engine.Request) *engine.Response {
	return volt.JSONResponse(200, simpleResponse{Message: "pong"})
}

func userHandler(ctx *volt.Context, req *engine.Request) *engine.Response {
	id, _ := ctx.Param(0)
	return volt.JSONResponse(200, simpleResponse{Message: "user " + string(id)})
}

func BenchmarkRouter_StaticRoute(b *testing.B) {
	app := volt.New()
	app.Get("/ping", pingHandler)
	rr := volt.ExposeForBenchmark(app)

	ctx := &volt.Context{}
	req := &engine.Request{Method: engine.MethodGET}
	req.SetPath([]byte("/ping"))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ctx.Params.Reset()
		proc := rr.Search(engine.MethodGET, req.Path(), &ctx.Params)
		_ = proc(ctx, req)
	}
}

func BenchmarkRouter_DynamicRoute(b *testing.B) {
	app := volt.New()
	app.Get("/users/:id", userHandler)
	rr := volt.ExposeForBenchmark(app)

	ctx := &volt.Context{}
	req := &engine.Request{Method: engine.MethodGET}
	req.SetPath([]byte("/users/123"))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ctx.Params.Reset()
		proc := rr.Search(engine.MethodGET, req.Path(), &ctx.Params)
		_ = proc(ctx, req)
	}
}

func BenchmarkRouter_ManyRoutes_StaticLookup(b *testing.B) {
	app := volt.New()
	for i := 0; i < 100; i++ {
		app.Get("/route"+string(rune('a'+i%26))+string(rune('0'+i%10)), pingHandler)
	}
	app.Get("/route-target", pingHandler)
	rr := volt.ExposeForBenchmark(app)

	ctx := &volt.Context{}
	req := &engine.Request{Method: engine.MethodGET}
	req.SetPath([]byte("/route-target"))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ctx.Params.Reset()
		proc := rr.Search(engine.MethodGET, req.Path(), &ctx.Params)
		_ = proc(ctx, req)
	}
}

func BenchmarkRouter_MixedRoutes(b *testing.B) {
	app := volt.New()
	app.Get("/", pingHandler)
	app.Get("/about", pingHandler)
	app.Get("/users/:id", userHandler)
	app.Get("/api/v1/users/:id/posts", pingHandler)
	rr := volt.ExposeForBenchmark(app)

	b.Run("Static", func(b *testing.B) {
		ctx := &volt.Context{}
		req := &engine.Request{Method: engine.MethodGET}
		req.SetPath([]byte("/about"))
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			ctx.Params.Reset()
			proc := rr.Search(engine.MethodGET, req.Path(), &ctx.Params)
			_ = proc(ctx, req)
		}
	})

	b.Run("Dynamic", func(b *testing.B) {
		ctx := &volt.Context{}
		req := &engine.Request{Method: engine.MethodGET}
		req.SetPath([]byte("/users/123"))
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			ctx.Params.Reset()
			proc := rr.Search(engine.MethodGET, req.Path(), &ctx.Params)
			_ = proc(ctx, req)
		}
	})

	b.Run("Nested", func(b *testing.B) {
		ctx := &volt.Context{}
		req := &engine.Request{Method: engine.MethodGET}
		req.SetPath([]byte("/api/v1/users/456/posts"))
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			ctx.Params.Reset()
			proc := rr.Search(engine.MethodGET, req.Path(), &ctx.Params)
			_ = proc(ctx, req)
		}
	})
}

func BenchmarkRouter_Concurrent(b *testing.B) {
	app := volt.New()
	app.Get("/ping", pingHandler)
	app.Get("/users/:id", userHandler)
	rr := volt.ExposeForBenchmark(app)

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		ctx := &volt.Context{}
		req := &engine.Request{Method: engine.MethodGET}
		req.SetPath([]byte("/users/123"))
		for pb.Next() {
			ctx.Params.Reset()
			proc := rr.Search(engine.MethodGET, req.Path(), &ctx.Params)
			_ = proc(ctx, req)
		}
	})
}
