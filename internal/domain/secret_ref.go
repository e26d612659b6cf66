package domain

import (
	"fmt"
	"strings"
)

const (
	secretRefScheme = "pfconn://"
	secretRefRoot   = "connections"
)

// SecretRef builds the secret-store reference for one secret of a connection,
// in "pfconn://connections/<name>/<key>" form.
func SecretRef(connectionName, secretKey string) string {
	return secretRefScheme + secretRefRoot + "/" + connectionName + "/" + secretKey
}

// SecretPath maps a reference to the relative path backends store it under.
// Refs without the pfconn scheme are used verbatim.
func SecretPath(ref string) (string, error) {
	trimmed := strings.TrimSpace(ref)
	if trimmed == "" {
		return "", fmt.Errorf("secret ref is empty")
	}

	if rest, ok := strings.CutPrefix(trimmed, secretRefScheme); ok {
		if rest == "" {
			return "", fmt.Errorf("secret ref %q has no path", ref)
		}
		return "pfconn/" + rest, nil
	}

	return trimmed, nil
}
