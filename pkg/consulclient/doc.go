// Package consulclient constructs clients implementing consul.Client.
//
// The consul package holds the request, response and error types; this
// package wires them to the default HTTP transport:
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/consul-client/pkg/consul"
//	  "github.com/fivetwenty-io/consul-client/pkg/consulclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // From CONSUL_HTTP_ADDR, CONSUL_HTTP_TOKEN and friends.
//	  cli, err := consulclient.New(nil)
//	  if err != nil { log.Fatal(err) }
//
//	  // Or explicitly.
//	  cli, err = consulclient.NewWithToken("https://consul.example.com:8501", "acl-token")
//	  if err != nil { log.Fatal(err) }
//
//	  nodes, err := cli.Health().Service(ctx, &consul.HealthServiceRequest{
//	    Service: "web",
//	    Passing: true,
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  for _, entry := range nodes.Payload {
//	    log.Println(entry.Node.Address, entry.Service.Port)
//	  }
//	}
//
// Blocking queries
//
// Pass the index of a previous response to wait for changes:
//
//	opts := consul.QueryOptions{}.WithIndex(resp.IndexOr(0), 5*time.Minute)
//	resp, err = cli.KV().Read(ctx, &consul.KVReadRequest{Key: "config", Recurse: true, QueryOptions: opts})
//
// Each call is a single round-trip; looping is up to the caller, or see the
// watch package.
//
// Custom endpoints
//
// Endpoints without a typed request are reachable through Execute:
//
//	desc, _ := consul.NewRequest[[]string](consul.MethodGet, "status/peers").Build()
//	peers, err := consulclient.Execute[[]string](ctx, cli, desc)
package consulclient
