// Package watch follows a Consul KV prefix with blocking queries and mirrors
// every change into a Sink.
//
// The loop runs on the caller's goroutine. Each iteration is one ordinary
// KV read issued through the client, carrying the index of the previous
// response, so the client itself never loops or retries:
//
//	w, err := watch.KeyPrefix(cli.KV(), "config/", watch.FuncSink{
//	  PutFunc: func(_ context.Context, pair consul.KVPair) error {
//	    log.Printf("%s = %s", pair.Key, pair.Value)
//	    return nil
//	  },
//	}, nil)
//	if err != nil { log.Fatal(err) }
//
//	err = w.Run(ctx) // returns ctx.Err() once ctx is done
//
// NATSKVSink replicates the prefix into a NATS JetStream key-value bucket.
package watch
