package credential

// AccountCredentials identifies one store's remote search index account.
type AccountCredentials struct {
	// APIKey is the public JS API key, also used to partition indexing rows.
	APIKey string
	// RestAuthKey authorizes batch API calls. Held decrypted in memory only.
	RestAuthKey string
	// StoreID is the store scope the credentials belong to.
	StoreID int64
}
