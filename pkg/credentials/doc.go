// Package credentials implements transport-security credential objects for
// RPC channels and servers.
//
// A credential is an immutable, reference-counted descriptor of how to secure
// a connection: PEM-encoded root certificates, an optional private-key /
// certificate-chain identity, and a peer-verification policy. Credentials do
// not perform handshakes themselves; at connection-establishment time they
// produce a live security connector through the ConnectorBuilder port, which
// the transport layer then uses.
//
// Files and responsibilities
// --------------------------
//   - key_cert_pair.go
//     KeyCertPair: value object owning a deep-copied private-key /
//     cert-chain pair. Both components are mandatory per pair.
//   - channel_config.go, server_config.go
//     ChannelTLSConfig / ServerTLSConfig: immutable deep-copied
//     configuration carried by the concrete credential variants, plus the
//     ClientCertPolicy enum for server-side client-certificate handling.
//   - verify.go
//     VerifyPeerCallback / VerifyPeerOptions: the externally supplied
//     peer-certificate decision hook and its teardown contract.
//   - bridge.go
//     verifyBridge: wraps the callback so that a panicking callback is
//     absorbed into a reject decision and the teardown hook runs exactly
//     once, at credential destruction.
//   - refcount.go
//     refCounted: the atomic shared-ownership lifecycle common to all
//     credential variants (destruct fires exactly once, at refcount zero).
//   - ports.go
//     Outbound ports: ConnectorBuilder (the TLS layer collaborator),
//     CallCredentials (per-call credentials, internals out of scope here),
//     and the connector result interfaces.
//   - channel.go, server.go
//     The concrete TLS channel and server credential variants and their
//     factories. Channel connector creation also performs channel-argument
//     augmentation (https scheme) via pkg/channelargs.
//   - composite.go
//     Compose: combines a channel credential with a call credential into a
//     single object satisfying the same channel-credential contract.
//
// Ownership and concurrency
// -------------------------
// All configuration is deep-copied from caller buffers at construction; a
// credential never aliases caller memory after its factory returns. After
// construction a credential is immutable apart from its atomic refcount, so
// any number of goroutines may share it and create security connectors
// concurrently. Release decrements the refcount; the goroutine that observes
// the transition to zero is the sole owner of teardown.
package credentials
