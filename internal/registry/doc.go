// Package registry maps identity keys to the containers registered under them.
//
// Each key owns a bucket of containers in registration order. Files that share
// a key and a shared container id land in the same container; any other
// registration under an existing key appends a new container to the bucket.
// Lookups return the last enabled container in the bucket, so later, more
// specific registrations win while earlier ones remain as fallbacks when the
// later ones are disabled.
//
// Registries are filled during the scan phase and then frozen. Once frozen,
// bucket structure never changes and lookups take no locks.
package registry
