package badger

// Key prefix for local storage entries. Keeps the keyspace open for other record types.
const localKeyPrefix = "ls:"

// makeLocalKey maps a local storage key to its badger key.
func makeLocalKey(key string) []byte {
	return []byte(localKeyPrefix + key)
}
