package helpers

import (
	"log"
	"net/http"
	"time"

	"github.com/openzipkin/zipkin-go"
	zipkinhttp "github.com/openzipkin/zipkin-go/middleware/http"
	"github.com/openzipkin/zipkin-go/reporter"
	httpreporter "github.com/openzipkin/zipkin-go/reporter/http"
)

// Tracing bundles the traced outbound client, the server
// middleware and a function flushing pending spans
type Tracing struct {
	Client     *http.Client
	Middleware func(http.Handler) http.Handler
	Close      func()
}

// InitTracer sets up zipkin; without address, spans are dropped
func InitTracer(address string, port string) Tracing {
	var rep reporter.Reporter
	if address == "" {
		rep = reporter.NewNoopReporter()
	} else {
		rep = httpreporter.NewReporter("http://" + address + "/api/v2/spans")
	}

	fallback := Tracing{
		Client:     &http.Client{Timeout: 30 * time.Second},
		Middleware: func(next http.Handler) http.Handler { return next },
		Close:      func() { _ = rep.Close() },
	}

	// create our local service endpoint
	endpoint, err := zipkin.NewEndpoint("forum", "localhost:"+port)
	if err != nil {
		log.Printf("unable to create local endpoint: %+v\n", err)
		return fallback
	}

	// initialize our tracer
	tracer, err := zipkin.NewTracer(rep, zipkin.WithLocalEndpoint(endpoint))
	if err != nil {
		log.Printf("unable to create tracer: %+v\n", err)
		return fallback
	}

	// create global zipkin traced http client
	client, err := zipkinhttp.NewClient(tracer, zipkinhttp.ClientTrace(true))
	if err != nil {
		log.Printf("unable to create client: %+v\n", err)
		return fallback
	}
	client.Client.Timeout = 30 * time.Second

	return Tracing{
		Client:     client.Client,
		Middleware: zipkinhttp.NewServerMiddleware(tracer, zipkinhttp.TagResponseSize(true)),
		Close:      fallback.Close,
	}
}
