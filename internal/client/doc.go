// SPDX-License-Identifier: Apache-2.0

// Package client implements the client application runtime.
//
// It wires local storage, the remote document adapter, identity tracking,
// the in-memory state holder, and background synchronization into a single
// process lifecycle. The runtime is headless: a UI shell drives it through
// the [App] facade (sign-in, mutations, lifecycle notifications) and
// observes sync progress via status subscriptions.
package client
