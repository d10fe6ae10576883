package consul

// KVPair is a single entry of the key/value store. Value holds the decoded
// bytes; the API transfers it base64 encoded, which encoding/json handles
// for []byte.
type KVPair struct {
	Key         string `json:"Key"`
	CreateIndex uint64 `json:"CreateIndex,omitempty"`
	ModifyIndex uint64 `json:"ModifyIndex,omitempty"`
	LockIndex   uint64 `json:"LockIndex,omitempty"`
	Flags       uint64 `json:"Flags,omitempty"`
	Value       []byte `json:"Value,omitempty"`
	Session     string `json:"Session,omitempty"`
	Namespace   string `json:"Namespace,omitempty"`
}
