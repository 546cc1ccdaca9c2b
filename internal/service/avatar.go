package service

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// gravatarURL deriva el avatar de forma determinística desde el email,
// sin tocar la red: el valor se calcula, no se consulta.
func gravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?d=mm&r=pg&s=200"
}
