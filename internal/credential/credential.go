// Package credential decides which API key, if any, an invocation uses.
//
// Resolution order is fixed: explicit flag, then COINPAPRIKA_API_KEY, then the
// persisted config file. No match means the unauthenticated free tier.
// Resolution reads the environment and the config file and nothing else; it
// never fails.
package credential

// EnvAPIKey is the environment variable holding the API key.
const EnvAPIKey = "COINPAPRIKA_API_KEY"

// Source identifies where the active key came from.
type Source int

const (
	SourceNone Source = iota
	SourceFlag
	SourceEnv
	SourceFile
)

// String returns the provenance label shown by `config show` and `status`.
func (s Source) String() string {
	switch s {
	case SourceFlag:
		return "CLI flag (--api-key)"
	case SourceEnv:
		return "Environment variable (" + EnvAPIKey + ")"
	case SourceFile:
		return "Config file (~/.coinpaprika/config.json)"
	default:
		return "Not set (using free tier)"
	}
}

// KeyStore is the persisted key lookup. *config.FileStore satisfies it.
type KeyStore interface {
	APIKey() (string, error)
}

// Credential is the resolved key and its source. The zero value means
// no credential.
type Credential struct {
	Key    string
	Source Source
}

// Present reports whether a key was found.
func (c Credential) Present() bool {
	return c.Key != ""
}

// Resolve returns the active credential. A nil getenv or store skips that
// source; a store error is treated as "no key stored".
func Resolve(explicit string, getenv func(string) string, store KeyStore) Credential {
	key, src := lookup(explicit, getenv, store)
	return Credential{Key: key, Source: src}
}

// Provenance reports only where the active key would come from.
func Provenance(explicit string, getenv func(string) string, store KeyStore) Source {
	_, src := lookup(explicit, getenv, store)
	return src
}

// lookup is the single precedence walk shared by Resolve and Provenance.
func lookup(explicit string, getenv func(string) string, store KeyStore) (string, Source) {
	if explicit != "" {
		return explicit, SourceFlag
	}
	if getenv != nil {
		if k := getenv(EnvAPIKey); k != "" {
			return k, SourceEnv
		}
	}
	if store != nil {
		if k, err := store.APIKey(); err == nil && k != "" {
			return k, SourceFile
		}
	}
	return "", SourceNone
}

// Mask hides all but the first and last four characters of key.
// Keys of eight characters or fewer are fully hidden.
func Mask(key string) string {
	runes := []rune(key)
	if len(runes) <= 8 {
		return "****"
	}
	return string(runes[:4]) + "..." + string(runes[len(runes)-4:])
}
