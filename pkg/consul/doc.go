// Package consul defines the typed surface of the Consul HTTP API client:
// request types and the builder that turns them into descriptors, the
// response envelope with its protocol metadata, the error types, and the
// interfaces implemented by the client in internal/client.
//
// Every call is one HTTP round-trip. Requests are validated locally before
// anything is sent, so a ValidationError always means the network was not
// touched:
//
//	c, err := consulclient.New(consul.DefaultConfig())
//	if err != nil {
//		return err
//	}
//
//	resp, err := c.KV().Read(ctx, &consul.KVReadRequest{Key: "config/web"})
//	switch {
//	case consul.IsNotFound(err):
//		// key is absent
//	case err != nil:
//		return err
//	}
//
//	fmt.Println(string(resp.Payload[0].Value), resp.IndexOr(0))
package consul
